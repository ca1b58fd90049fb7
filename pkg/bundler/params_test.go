package bundler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	builder, err := New(Params{
		LibraryName: "lib",
		InputPath:   "./index.js",
		ProjectRoot: "/proj",
	})
	require.NoError(t, err)

	params := builder.Params()
	require.Equal(t, "/proj/lib", params.OutputPath)
	require.Equal(t, "globalThis", params.GlobalObject)
	require.NotNil(t, params.DefinedConstants)
	require.NotNil(t, params.ExternalModules)
}

func TestNormalizeProjectRootDefault(t *testing.T) {
	builder, err := New(Params{
		LibraryName: "lib",
		InputPath:   "index.js",
	})
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	params := builder.Params()
	require.Equal(t, cwd, params.ProjectRoot)
	require.Equal(t, filepath.Join(cwd, "index.js"), params.InputPath)
}

func TestNormalizeEmptyPathsStayEmpty(t *testing.T) {
	builder, err := New(Params{ProjectRoot: "/proj"})
	require.NoError(t, err)

	// An empty input path must stay empty so Build reports it as missing
	// instead of resolving the project root itself as the entry.
	params := builder.Params()
	require.Empty(t, params.InputPath)
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want string
	}{
		{name: "relative", root: "/proj", path: "./src", want: "/proj/src"},
		{name: "bare relative", root: "/proj", path: "src", want: "/proj/src"},
		{name: "absolute unchanged", root: "/proj", path: "/abs/src", want: "/abs/src"},
		{name: "empty unchanged", root: "/proj", path: "", want: ""},
		{name: "parent traversal", root: "/proj/sub", path: "../src", want: "/proj/src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolvePath(tt.root, tt.path))
		})
	}
}

func TestParamsAccessorDetached(t *testing.T) {
	builder, err := New(Params{
		LibraryName:     "lib",
		InputPath:       "index.js",
		ProjectRoot:     "/proj",
		ExternalModules: map[string]string{"lodash": "lodash"},
	})
	require.NoError(t, err)

	leaked := builder.Params()
	leaked.ExternalModules["hacked"] = "hacked"

	require.NotContains(t, builder.Params().ExternalModules, "hacked")
}
