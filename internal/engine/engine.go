// Package engine runs a generated bundler configuration through esbuild.
// The configuration itself stays engine-neutral; the mapping onto esbuild
// options lives entirely here.
package engine

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/stellar-expert/libbundle/pkg/bundler"
)

// Translate maps a configuration record onto esbuild build options.
func Translate(cfg *bundler.Config) api.BuildOptions {
	entryPoints := make([]api.EntryPoint, 0, len(cfg.Entry))
	globalName := cfg.Output.Library.Name
	for name, input := range cfg.Entry {
		entryPoints = append(entryPoints, api.EntryPoint{
			InputPath:  input,
			OutputPath: name,
		})
		if globalName == "" {
			globalName = name
		}
	}

	external := make([]string, 0, len(cfg.Externals))
	for name := range cfg.Externals {
		external = append(external, name)
	}

	minify := len(cfg.Optimization.Minimizer) > 0

	opts := api.BuildOptions{
		EntryPointsAdvanced: entryPoints,
		Bundle:              true,
		Write:               true,
		Outdir:              cfg.Output.Path,
		Format:              api.FormatIIFE,
		GlobalName:          globalName,
		Platform:            api.PlatformBrowser,
		External:            external,
		NodePaths:           cfg.Resolve.Modules,
		MinifyWhitespace:    minify,
		MinifyIdentifiers:   minify,
		MinifySyntax:        minify,
		TreeShaking:         api.TreeShakingTrue,
		Sourcemap:           cond(cfg.Devtool == "source-map", api.SourceMapLinked, api.SourceMapNone),
		Loader:              map[string]api.Loader{".wasm": api.LoaderBase64},
		Alias:               aliases(cfg.Resolve.Fallback),
		Metafile:            hasPlugin(cfg, bundler.PluginBundleAnalyzer),
	}

	if define := definitions(cfg); len(define) > 0 {
		opts.Define = define
	}
	if ignore := ignorePlugin(cfg); ignore != nil {
		opts.Plugins = append(opts.Plugins, *ignore)
	}
	return opts
}

// Run cleans the output directory, executes the build and, when the
// configuration asks for bundle statistics, writes the metafile next to
// the output artifacts.
func Run(cfg *bundler.Config) error {
	if cfg.Output.Clean {
		if err := os.RemoveAll(cfg.Output.Path); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(cfg.Output.Path, 0o750); err != nil {
		return err
	}

	log.Info().
		Str("mode", string(cfg.Mode)).
		Str("outdir", cfg.Output.Path).
		Msg("Building bundle")

	result := api.Build(Translate(cfg))

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Error().Str("error", msg.Text).Msg("Build error")
		}
		return errors.New("bundler engine failed with errors")
	}

	for _, file := range result.OutputFiles {
		log.Info().Str("file", file.Path).Msg("Built file")
	}

	if result.Metafile != "" {
		metaPath := filepath.Join(cfg.Output.Path, "bundle-stats.json")
		if err := os.WriteFile(metaPath, []byte(result.Metafile), 0o600); err != nil {
			return err
		}
		log.Info().Str("file", metaPath).Msg("Wrote bundle statistics")
	}
	return nil
}

// aliases keeps the string-valued fallbacks as module aliases; disabled
// modules are left to the bundle's own shims.
func aliases(fallback map[string]any) map[string]string {
	out := map[string]string{}
	for name, target := range fallback {
		if replacement, ok := target.(string); ok {
			out[name] = replacement
		}
	}
	return out
}

// definitions extracts the compile-time constants from the define plugin.
func definitions(cfg *bundler.Config) map[string]string {
	out := map[string]string{}
	for _, plugin := range cfg.Plugins {
		if plugin.Name != bundler.PluginDefine {
			continue
		}
		for name, value := range plugin.Options {
			if encoded, ok := value.(string); ok {
				out[name] = encoded
			}
		}
	}
	return out
}

// ignorePlugin adapts the ignore descriptor's predicate into an esbuild
// resolve hook that marks excluded resources as external.
func ignorePlugin(cfg *bundler.Config) *api.Plugin {
	for _, plugin := range cfg.Plugins {
		if plugin.Name != bundler.PluginIgnore || plugin.CheckResource == nil {
			continue
		}
		check := plugin.CheckResource
		return &api.Plugin{
			Name: "ignore",
			Setup: func(build api.PluginBuild) {
				build.OnResolve(api.OnResolveOptions{Filter: ".*"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if check(args.Path, args.ResolveDir) {
						return api.OnResolveResult{Path: args.Path, External: true}, nil
					}
					return api.OnResolveResult{}, nil
				})
			},
		}
	}
	return nil
}

func hasPlugin(cfg *bundler.Config, name string) bool {
	for _, plugin := range cfg.Plugins {
		if plugin.Name == name {
			return true
		}
	}
	return false
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
