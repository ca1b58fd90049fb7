package bundler

import (
	"github.com/gobwas/glob"
)

// IgnoreGlobs compiles glob patterns into an IgnorePredicate that excludes
// any resource matching one of them. Invalid patterns are skipped.
func IgnoreGlobs(patterns ...string) IgnorePredicate {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		compiled = append(compiled, g)
	}
	return func(resource, _ string) bool {
		for _, g := range compiled {
			if g.Match(resource) {
				return true
			}
		}
		return false
	}
}
