package rules

import "errors"

// Sentinel validation errors. Each missing required key fails with its own
// kind so callers can distinguish malformed rule files programmatically via
// errors.Is.
var (
	// ErrRuleFormat reports a rule document that is not a structured
	// mapping at all.
	ErrRuleFormat = errors.New("choice rule format is invalid")

	// ErrIDKeyMissing reports a rule without the "id" key.
	ErrIDKeyMissing = errors.New(`rule is missing the key "id"`)

	// ErrTypeKeyMissing reports a rule without the "type" key.
	ErrTypeKeyMissing = errors.New(`rule is missing the key "type"`)

	// ErrPatternKeyMissing reports a rule missing one of the pattern keys:
	// "choice_type", "selection", or "choice".
	ErrPatternKeyMissing = errors.New("rule is missing a pattern key")
)
