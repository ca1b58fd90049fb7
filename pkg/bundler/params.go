package bundler

import (
	"os"
	"path/filepath"

	"dario.cat/mergo"
)

// Built-in externals. The generated library links against the host page's
// copy of the SDK instead of embedding it.
const (
	sdkPackage  = "@stellar/stellar-sdk"
	basePackage = "@stellar/stellar-base"
)

// LibraryDescriptor describes how the bundle is exposed to consumers.
type LibraryDescriptor struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Export string `json:"export,omitempty" yaml:"export,omitempty"`
}

// IgnorePredicate decides whether a resolved resource should be excluded
// from the bundle. It receives the resource request and the directory of
// the module issuing it, and excludes the resource when it returns true.
type IgnorePredicate func(resource, context string) bool

// Params holds the declarative build parameters for one library bundle.
// They are supplied once, normalized by New, and stay fixed for the
// lifetime of the builder.
type Params struct {
	// LibraryName is the output variable / module name. Required.
	LibraryName string `json:"libraryName" yaml:"libraryName"`
	// InputPath is the entry module, resolved against ProjectRoot when relative. Required.
	InputPath string `json:"inputPath" yaml:"inputPath"`
	// OutputPath is the destination directory, resolved the same way.
	OutputPath string `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`
	// ProjectRoot anchors relative paths. Defaults to the working directory.
	ProjectRoot string `json:"projectRoot,omitempty" yaml:"projectRoot,omitempty"`
	// Library overrides the default export descriptor {type: umd2, export: default}.
	Library LibraryDescriptor `json:"library,omitempty" yaml:"library,omitempty"`
	// DefinedConstants are injected as compile-time constants, JSON-encoded.
	DefinedConstants map[string]any `json:"define,omitempty" yaml:"define,omitempty"`
	// ExternalModules are merged over the built-in SDK externals; caller entries win.
	ExternalModules map[string]string `json:"externals,omitempty" yaml:"externals,omitempty"`
	// GenerateSourceMap enables full source map output.
	GenerateSourceMap bool `json:"sourceMap,omitempty" yaml:"sourceMap,omitempty"`
	// GlobalObject names the global scope reference used by the output wrapper.
	GlobalObject string `json:"globalObject,omitempty" yaml:"globalObject,omitempty"`
	// IgnorePredicate optionally excludes matching resources from the bundle.
	IgnorePredicate IgnorePredicate `json:"-" yaml:"-"`
	// CollectBundleStatistics enables the bundle size report and, when the
	// diagnostics provider supports it, duplicate module detection.
	CollectBundleStatistics bool `json:"bundleStats,omitempty" yaml:"bundleStats,omitempty"`
}

// defaultParams returns the baseline record caller fields are merged over.
func defaultParams() Params {
	return Params{
		OutputPath:       "./lib",
		GlobalObject:     "globalThis",
		DefinedConstants: map[string]any{},
		ExternalModules:  map[string]string{},
	}
}

// normalize merges p over the defaults, resolves paths against ProjectRoot
// and returns a detached copy. Paths are resolved exactly once, here.
func normalize(p Params) (Params, error) {
	merged := defaultParams()
	if err := mergo.Merge(&merged, p, mergo.WithOverride); err != nil {
		return Params{}, err
	}

	if merged.ProjectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Params{}, err
		}
		merged.ProjectRoot = cwd
	}

	merged.InputPath = resolvePath(merged.ProjectRoot, merged.InputPath)
	merged.OutputPath = resolvePath(merged.ProjectRoot, merged.OutputPath)

	// Detach maps so later caller mutation is not observable.
	merged.DefinedConstants = cloneMap(merged.DefinedConstants)
	merged.ExternalModules = cloneMap(merged.ExternalModules)

	return merged, nil
}

// resolvePath anchors a relative path at root. Absolute paths and the empty
// string pass through unchanged.
func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
