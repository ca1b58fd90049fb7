// Package transpiler generates the source transform configuration shared by
// the library bundles: one environment preset with pinned polyfill and
// runtime targets, plus any caller-supplied plugins.
package transpiler

import "encoding/json"

// Pinned toolchain targets. Bump deliberately; every consuming library
// inherits these.
const (
	polyfillVersion   = "3.33"
	minRuntimeVersion = "18"
)

// Targets lists the environments the preset compiles for.
type Targets struct {
	Browsers []string `json:"browsers"`
	Node     string   `json:"node"`
}

// PresetOptions configures the environment preset.
type PresetOptions struct {
	// UseBuiltIns selects the polyfill injection strategy.
	UseBuiltIns string `json:"useBuiltIns"`
	// CoreJS pins the polyfill library version.
	CoreJS  string  `json:"corejs"`
	Targets Targets `json:"targets"`
}

// Preset is a named transform bundle with options. It serializes as the
// [name, options] tuple the transpiler engine expects.
type Preset struct {
	Name    string
	Options PresetOptions
}

func (p Preset) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, p.Options})
}

// Plugin is one additional transform.
type Plugin struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options,omitempty"`
}

// Config is the record handed to the transpiler engine. Cacheable signals
// the engine to reuse the result for the rest of the process.
type Config struct {
	Presets   []Preset `json:"presets"`
	Plugins   []Plugin `json:"plugins"`
	Cacheable bool     `json:"cacheable"`
}

// New returns the transform configuration: the pinned environment preset
// followed by any additional plugins, in the order given. Pure function of
// its arguments.
func New(additionalPlugins ...Plugin) Config {
	plugins := make([]Plugin, len(additionalPlugins))
	copy(plugins, additionalPlugins)

	return Config{
		Presets: []Preset{{
			Name: "env",
			Options: PresetOptions{
				UseBuiltIns: "entry",
				CoreJS:      polyfillVersion,
				Targets: Targets{
					Browsers: []string{"> 2%", "not dead", "not op_mini all"},
					Node:     minRuntimeVersion,
				},
			},
		}},
		Plugins:   plugins,
		Cacheable: true,
	}
}
