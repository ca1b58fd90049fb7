package bundler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIgnoreGlobs(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		resource string
		want     bool
	}{
		{name: "exact match", patterns: []string{"fsevents"}, resource: "fsevents", want: true},
		{name: "wildcard match", patterns: []string{"*.node"}, resource: "binding.node", want: true},
		{name: "scoped package", patterns: []string{"@types/*"}, resource: "@types/node", want: true},
		{name: "no match", patterns: []string{"fsevents"}, resource: "buffer", want: false},
		{name: "second pattern matches", patterns: []string{"fsevents", "ws"}, resource: "ws", want: true},
		{name: "empty patterns", patterns: nil, resource: "anything", want: false},
		{name: "separator not crossed", patterns: []string{"@types/*"}, resource: "@types/a/b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate := IgnoreGlobs(tt.patterns...)
			require.Equal(t, tt.want, predicate(tt.resource, "/proj"))
		})
	}
}

func TestIgnoreGlobsInvalidPatternSkipped(t *testing.T) {
	predicate := IgnoreGlobs("[invalid", "fsevents")
	require.True(t, predicate("fsevents", ""))
	require.False(t, predicate("[invalid", ""))
}
