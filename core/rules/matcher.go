package rules

import "strings"

// Match is the outcome of running one rule against one file's normalized
// text. Exactly one of the two collections is populated, determined by the
// rule's choice type: Indices for "or"/"and" rules (matched choice positions
// in ascending order), Labels for "all" rules (labels of every matched
// choice).
type Match struct {
	Indices []int
	Labels  []string
}

// Empty reports whether the match carries no results at all.
func (m Match) Empty() bool {
	return len(m.Indices) == 0 && len(m.Labels) == 0
}

// Matcher is the pattern-matching strategy applied to normalized file text.
// Implementations receive the full text of one file and the triggering rule.
type Matcher interface {
	Match(text string, rule Rule) Match
}

// LiteralMatcher matches choice tokens as literal substrings of the text.
// "or" and "all" choices match when their single token appears; "and"
// choices match only when every token of the choice appears.
type LiteralMatcher struct{}

// Match evaluates every choice of the rule against the text in declaration
// order. Choice positions double as priority indices, so Indices is always
// ascending.
func (LiteralMatcher) Match(text string, rule Rule) Match {
	var m Match
	for idx, c := range rule.Choice {
		switch rule.ChoiceType {
		case ChoiceAnd:
			if containsAll(text, c.Tokens) {
				m.Indices = append(m.Indices, idx)
			}
		case ChoiceOr:
			if len(c.Tokens) > 0 && strings.Contains(text, c.Tokens[0]) {
				m.Indices = append(m.Indices, idx)
			}
		case ChoiceAll:
			if len(c.Tokens) > 0 && strings.Contains(text, c.Tokens[0]) {
				m.Labels = append(m.Labels, c.Label)
			}
		}
	}
	return m
}

// containsAll reports whether every token appears in the text. A choice with
// no tokens never matches.
func containsAll(text string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
