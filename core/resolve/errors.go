package resolve

import "fmt"

// ProcessingError reports a failure while scanning one rule's files. The
// rule context is preserved and the original cause remains reachable via
// errors.Unwrap. A single ProcessingError fails the whole scan; no partial
// result mapping is returned.
type ProcessingError struct {
	RuleID string
	Err    error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing rule %q: %v", e.RuleID, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
