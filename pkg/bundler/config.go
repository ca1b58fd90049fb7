package bundler

// Mode selects the build profile.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// InvocationContext carries the per-invocation inputs supplied by the CLI
// driver. Env is passed through untouched; only Mode affects the output.
type InvocationContext struct {
	Mode Mode
	Env  map[string]string
}

// Config is the full configuration record handed to the bundler engine.
// It is inert data; the engine owns all file system and bundling work.
type Config struct {
	Mode          Mode              `json:"mode"`
	Entry         map[string]string `json:"entry"`
	Output        Output            `json:"output"`
	Module        Module            `json:"module"`
	Plugins       []Plugin          `json:"plugins"`
	Externals     map[string]string `json:"externals"`
	Resolve       Resolve           `json:"resolve"`
	ResolveLoader ResolveLoader     `json:"resolveLoader"`
	Optimization  Optimization      `json:"optimization"`
	Devtool       string            `json:"devtool,omitempty"`
}

// Output describes where and how artifacts are emitted. Clean is always
// set: previous build output is removed before each build.
type Output struct {
	Path         string            `json:"path"`
	Filename     string            `json:"filename"`
	Library      LibraryDescriptor `json:"library"`
	GlobalObject string            `json:"globalObject"`
	Clean        bool              `json:"clean"`
}

// Rule routes files matching Test through a loader.
type Rule struct {
	Test   string `json:"test"`
	Loader string `json:"loader,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Module holds the transform rules plus the NoParse pattern for files the
// engine must not attempt to parse itself.
type Module struct {
	Rules   []Rule `json:"rules"`
	NoParse string `json:"noParse,omitempty"`
}

// Resolve configures module resolution. Fallback values are either a
// replacement module specifier or false to disable the module entirely.
type Resolve struct {
	Symlinks bool           `json:"symlinks"`
	Modules  []string       `json:"modules"`
	Fallback map[string]any `json:"fallback"`
}

// ResolveLoader lists the directories searched for loader packages.
type ResolveLoader struct {
	Modules []string `json:"modules"`
}

// Minimizer describes one post-build size reduction pass.
type Minimizer struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options,omitempty"`
}

// Optimization pins module identity assignment and the minimizer list.
type Optimization struct {
	ModuleIDs string      `json:"moduleIds"`
	Minimizer []Minimizer `json:"minimizer,omitempty"`
}
