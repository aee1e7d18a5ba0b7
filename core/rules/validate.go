package rules

import "fmt"

// Validate checks every rule for structural well-formedness before any
// scanning starts. Checks run in a fixed order per rule (id, type,
// choice_type, selection, choice) and the first missing key aborts
// validation with its field-specific error kind. A single invalid rule fails
// the whole set.
func Validate(ruleList []Rule) error {
	for i, r := range ruleList {
		if r.ID == "" {
			return fmt.Errorf("rule %d: %w", i, ErrIDKeyMissing)
		}
		if r.Type == "" {
			return fmt.Errorf("rule %q: %w", r.ID, ErrTypeKeyMissing)
		}
		if r.ChoiceType == "" {
			return fmt.Errorf("rule %q: %w: %q", r.ID, ErrPatternKeyMissing, "choice_type")
		}
		if r.Selection == "" {
			return fmt.Errorf("rule %q: %w: %q", r.ID, ErrPatternKeyMissing, "selection")
		}
		if len(r.Choice) == 0 {
			return fmt.Errorf("rule %q: %w: %q", r.ID, ErrPatternKeyMissing, "choice")
		}
	}
	return nil
}
