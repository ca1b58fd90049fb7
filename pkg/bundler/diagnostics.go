package bundler

// DiagnosticsProvider supplies optional build diagnostics plugins. The
// provider is injected configuration, not a runtime probe: a provider
// without duplicate detection is a normal value, and a nil provider
// disables diagnostics entirely. Absence of a capability never fails the
// build.
type DiagnosticsProvider interface {
	Plugins(mode Mode) []Plugin
}

// ReportProvider is the default diagnostics provider. It always emits a
// static HTML bundle size report and, when CheckDuplicates is set, a
// duplicate module detector that reports without failing the build.
type ReportProvider struct {
	// ReportFilename overrides the default bundle-stats.html.
	ReportFilename string
	// CheckDuplicates adds the duplicate module detector.
	CheckDuplicates bool
}

func (r ReportProvider) Plugins(_ Mode) []Plugin {
	filename := r.ReportFilename
	if filename == "" {
		filename = "bundle-stats.html"
	}
	plugins := []Plugin{{
		Name: PluginBundleAnalyzer,
		Options: map[string]any{
			"analyzerMode":   "static",
			"reportFilename": filename,
			"openAnalyzer":   false,
		},
	}}
	if r.CheckDuplicates {
		plugins = append(plugins, Plugin{
			Name: PluginDuplicateCheck,
			Options: map[string]any{
				"verbose":   true,
				"emitError": false,
			},
		})
	}
	return plugins
}
