package bundler

import (
	"encoding/json"
	"os"
	"path/filepath"

	"dario.cat/mergo"
)

// Builder derives bundler configurations from one frozen parameter record.
// Build may be called repeatedly; every mode-dependent section is recomputed
// per call from the normalized parameters.
type Builder struct {
	params      Params
	toolRoot    string
	diagnostics DiagnosticsProvider
}

// Option adjusts builder wiring that is not part of the build parameters.
type Option func(*Builder)

// WithDiagnostics replaces the default diagnostics provider. Passing nil
// disables diagnostics output even when bundle statistics are requested.
func WithDiagnostics(p DiagnosticsProvider) Option {
	return func(b *Builder) {
		b.diagnostics = p
	}
}

// WithToolRoot sets the directory whose node_modules is searched for
// loaders in addition to the project's own. Defaults to the project root.
func WithToolRoot(dir string) Option {
	return func(b *Builder) {
		b.toolRoot = dir
	}
}

// New normalizes params, applies defaults and returns a builder holding a
// detached copy of the record. No file system access happens here beyond
// resolving the working directory default.
func New(params Params, opts ...Option) (*Builder, error) {
	normalized, err := normalize(params)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		params:      normalized,
		diagnostics: ReportProvider{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.toolRoot == "" {
		b.toolRoot = normalized.ProjectRoot
	}
	return b, nil
}

// Params returns a copy of the normalized parameter record.
func (b *Builder) Params() Params {
	p := b.params
	p.DefinedConstants = cloneMap(p.DefinedConstants)
	p.ExternalModules = cloneMap(p.ExternalModules)
	return p
}

// Build assembles the configuration for one invocation. The single failure
// path is a MissingEntryError when LibraryName or InputPath is empty. As a
// documented side effect the NODE_ENV process variable is set to the
// resolved mode for downstream tooling; everything else is pure derivation
// from the frozen parameters.
func (b *Builder) Build(ctx InvocationContext) (*Config, error) {
	mode := ctx.Mode
	if mode == "" {
		mode = ModeDevelopment
	}
	if err := os.Setenv("NODE_ENV", string(mode)); err != nil {
		return nil, err
	}

	entry, err := resolveEntry(b.params)
	if err != nil {
		return nil, err
	}

	output, err := resolveOutput(b.params)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mode:          mode,
		Entry:         entry,
		Output:        output,
		Module:        moduleRules(),
		Plugins:       assemblePlugins(b.params, mode, b.diagnostics),
		Externals:     resolveExternals(b.params),
		Resolve:       resolveModules(b.params, b.toolRoot),
		ResolveLoader: ResolveLoader{Modules: searchDirs(b.params.ProjectRoot, b.toolRoot)},
		Optimization:  resolveOptimization(mode),
		Devtool:       resolveDevtool(b.params),
	}
	return cfg, nil
}

// resolveEntry returns the single-entry map keyed by library name. The
// input path is already absolute at this point.
func resolveEntry(p Params) (map[string]string, error) {
	if p.LibraryName == "" {
		return nil, &MissingEntryError{Field: "libraryName"}
	}
	if p.InputPath == "" {
		return nil, &MissingEntryError{Field: "inputPath"}
	}
	return map[string]string{p.LibraryName: p.InputPath}, nil
}

func resolveOutput(p Params) (Output, error) {
	library := LibraryDescriptor{Type: "umd2", Export: "default"}
	if err := mergo.Merge(&library, p.Library, mergo.WithOverride); err != nil {
		return Output{}, err
	}
	return Output{
		Path:         p.OutputPath,
		Filename:     "[name].js",
		Library:      library,
		GlobalObject: p.GlobalObject,
		Clean:        true,
	}, nil
}

func moduleRules() Module {
	return Module{
		Rules: []Rule{
			{Test: `\.js$`, Loader: "babel-loader"},
			{Test: `\.wasm$`, Loader: "base64-loader", Type: "javascript/auto"},
		},
		NoParse: `\.wasm$`,
	}
}

// resolveExternals overlays caller-supplied externals over the built-in SDK
// pair. Caller entries win on key collision.
func resolveExternals(p Params) map[string]string {
	externals := map[string]string{
		sdkPackage:  sdkPackage,
		basePackage: basePackage,
	}
	for name, target := range p.ExternalModules {
		externals[name] = target
	}
	return externals
}

// resolveModules enables symlink following (required for workspace-linked
// installs) and substitutes browser shims for runtime-only modules.
func resolveModules(p Params, toolRoot string) Resolve {
	return Resolve{
		Symlinks: true,
		Modules:  searchDirs(p.ProjectRoot, toolRoot),
		Fallback: map[string]any{
			"util":   false,
			"http":   false,
			"https":  false,
			"path":   false,
			"fs":     false,
			"url":    false,
			"events": "events/",
			"buffer": "buffer/",
			"stream": "stream-browserify",
		},
	}
}

func searchDirs(projectRoot, toolRoot string) []string {
	dirs := []string{filepath.Join(projectRoot, "node_modules")}
	if toolRoot != "" && toolRoot != projectRoot {
		dirs = append(dirs, filepath.Join(toolRoot, "node_modules"))
	}
	return dirs
}

// assemblePlugins builds the ordered plugin list. The loader-options plugin
// is inserted at the head; everything else is appended in fixed order.
func assemblePlugins(p Params, mode Mode, diagnostics DiagnosticsProvider) []Plugin {
	plugins := []Plugin{{
		Name: PluginProvide,
		Options: map[string]any{
			"Buffer": []string{"buffer", "Buffer"},
		},
	}}

	if p.IgnorePredicate != nil {
		plugins = append(plugins, Plugin{
			Name:          PluginIgnore,
			CheckResource: p.IgnorePredicate,
		})
	}

	plugins = append(plugins, Plugin{
		Name:    PluginDefine,
		Options: defineConstants(p, mode),
	})

	if p.CollectBundleStatistics && diagnostics != nil {
		plugins = append(plugins, diagnostics.Plugins(mode)...)
	}

	head := Plugin{
		Name: PluginLoaderOptions,
		Options: map[string]any{
			"minimize":  mode != ModeDevelopment,
			"debug":     false,
			"sourceMap": p.GenerateSourceMap,
		},
	}
	return append([]Plugin{head}, plugins...)
}

// defineConstants JSON-encodes every injected constant so the engine can
// substitute them verbatim into the output.
func defineConstants(p Params, mode Mode) map[string]any {
	constants := map[string]any{
		"process.env.NODE_ENV": encodeConstant(string(mode)),
	}
	for name, value := range p.DefinedConstants {
		constants[name] = encodeConstant(value)
	}
	return constants
}

func encodeConstant(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		// Parameters are plain data by contract; keep the raw value visible
		// in the output rather than failing the build.
		return "undefined"
	}
	return string(encoded)
}

// resolveOptimization pins deterministic module ids and, in production,
// a terser pass allowed to rename top level identifiers.
func resolveOptimization(mode Mode) Optimization {
	opt := Optimization{ModuleIDs: "deterministic"}
	if mode == ModeProduction {
		opt.Minimizer = []Minimizer{{
			Name:    "terser",
			Options: map[string]any{"toplevel": true},
		}}
	}
	return opt
}

// resolveDevtool returns the full source map mode when requested, or empty
// to omit the setting entirely.
func resolveDevtool(p Params) string {
	if p.GenerateSourceMap {
		return "source-map"
	}
	return ""
}
