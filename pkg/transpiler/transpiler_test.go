package transpiler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	require.Len(t, cfg.Presets, 1)
	require.Empty(t, cfg.Plugins)
	require.True(t, cfg.Cacheable)

	preset := cfg.Presets[0]
	require.Equal(t, "env", preset.Name)
	require.Equal(t, "entry", preset.Options.UseBuiltIns)
	require.Equal(t, "3.33", preset.Options.CoreJS)
	require.Equal(t, []string{"> 2%", "not dead", "not op_mini all"}, preset.Options.Targets.Browsers)
	require.Equal(t, "18", preset.Options.Targets.Node)
}

func TestNewAdditionalPlugins(t *testing.T) {
	first := Plugin{Name: "transform-runtime"}
	second := Plugin{Name: "proposal-decorators", Options: map[string]any{"version": "2023-05"}}

	cfg := New(first, second)
	require.Equal(t, []Plugin{first, second}, cfg.Plugins)

	// The argument slice is copied, not aliased.
	args := []Plugin{first}
	cfg = New(args...)
	args[0].Name = "mutated"
	require.Equal(t, "transform-runtime", cfg.Plugins[0].Name)
}

func TestNewPure(t *testing.T) {
	require.Equal(t, New(), New())
}

func TestPresetTupleEncoding(t *testing.T) {
	encoded, err := json.Marshal(New().Presets[0])
	require.NoError(t, err)

	var tuple []json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &tuple))
	require.Len(t, tuple, 2)

	var name string
	require.NoError(t, json.Unmarshal(tuple[0], &name))
	require.Equal(t, "env", name)

	var options map[string]any
	require.NoError(t, json.Unmarshal(tuple[1], &options))
	require.Equal(t, "entry", options["useBuiltIns"])
	require.Equal(t, "3.33", options["corejs"])
}
