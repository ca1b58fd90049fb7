package bundler

import "fmt"

// MissingEntryError reports an absent required parameter. It is the only
// user-facing failure of Build: fatal, raised synchronously, never retried.
type MissingEntryError struct {
	Field string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("bundler: required parameter %q is missing", e.Field)
}
