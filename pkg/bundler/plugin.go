package bundler

// Well-known plugin names emitted by the builder. The engine dispatches on
// these; order within Config.Plugins is significant.
const (
	PluginLoaderOptions  = "loader-options"
	PluginProvide        = "provide"
	PluginIgnore         = "ignore"
	PluginDefine         = "define"
	PluginBundleAnalyzer = "bundle-analyzer"
	PluginDuplicateCheck = "duplicate-package-checker"
)

// Plugin is one engine plugin descriptor. CheckResource is only set on the
// ignore plugin and is not serializable; configs carrying it can only be
// consumed in-process.
type Plugin struct {
	Name          string          `json:"name"`
	Options       map[string]any  `json:"options,omitempty"`
	CheckResource IgnorePredicate `json:"-"`
}
