// Package rules implements the declarative choice-rule model for the electa
// resolution engine. Rules are loaded from YAML files, validated for
// structural well-formedness, and matched against normalized file text using
// pluggable matchers. Each rule resolves to at most one choice, which the
// core/findings package reduces into the final finding map.
package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ChoiceType selects the match-collection and reduction semantics of a rule.
type ChoiceType string

const (
	// ChoiceOr matches a choice when its single token appears in the text.
	// The first matched choice index represents the file; the smallest
	// matched index across files wins the reduction.
	ChoiceOr ChoiceType = "or"
	// ChoiceAnd matches a choice only when every one of its tokens appears
	// in the text. Reduction is identical to ChoiceOr.
	ChoiceAnd ChoiceType = "and"
	// ChoiceAll collects the labels of every matched choice across all
	// files into a set; the reduction formats the full set.
	ChoiceAll ChoiceType = "all"
)

// reservedKeys are rule keys consumed by the engine itself. Every other key
// is opaque metadata passed through to the finding unchanged.
var reservedKeys = map[string]bool{
	"choice":      true,
	"message":     true,
	"id":          true,
	"type":        true,
	"choice_type": true,
	"selection":   true,
	"else":        true,
}

// Choice is one candidate outcome of a rule: a token (or token group for
// "and" rules) and the display label reported when the choice is selected.
// The position of a choice within the rule is its priority index.
type Choice struct {
	Tokens []string
	Label  string
}

// UnmarshalYAML decodes a choice entry of the form [token, label] or
// [[token, token, ...], label].
func (c *Choice) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("%w: choice entry must be a [token(s), label] pair", ErrRuleFormat)
	}
	tok := node.Content[0]
	switch tok.Kind {
	case yaml.ScalarNode:
		c.Tokens = []string{tok.Value}
	case yaml.SequenceNode:
		if err := tok.Decode(&c.Tokens); err != nil {
			return fmt.Errorf("%w: decoding choice tokens: %v", ErrRuleFormat, err)
		}
	default:
		return fmt.Errorf("%w: choice token must be a scalar or a sequence", ErrRuleFormat)
	}
	if err := node.Content[1].Decode(&c.Label); err != nil {
		return fmt.Errorf("%w: decoding choice label: %v", ErrRuleFormat, err)
	}
	return nil
}

// Rule is a single declarative choice rule. It describes which file
// population to scan (Type), how matches are collected (ChoiceType), the
// candidate outcomes (Choice), and how the resolved value is rendered
// (Selection). Keys not consumed by the engine are collected into Meta and
// passed through to the finding.
type Rule struct {
	ID         string
	Type       string
	ChoiceType ChoiceType
	Selection  string
	Choice     []Choice
	Message    string
	Else       string
	Meta       map[string]any
}

// UnmarshalYAML decodes a rule mapping, routing the seven reserved keys into
// their fields and everything else into Meta.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping", ErrRuleFormat)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]

		var err error
		switch key {
		case "id":
			err = val.Decode(&r.ID)
		case "type":
			err = val.Decode(&r.Type)
		case "choice_type":
			var s string
			if err = val.Decode(&s); err == nil {
				r.ChoiceType = ChoiceType(s)
			}
		case "selection":
			err = val.Decode(&r.Selection)
		case "choice":
			err = val.Decode(&r.Choice)
		case "message":
			err = val.Decode(&r.Message)
		case "else":
			err = val.Decode(&r.Else)
		default:
			var v any
			if err = val.Decode(&v); err == nil {
				if r.Meta == nil {
					r.Meta = make(map[string]any)
				}
				r.Meta[key] = v
			}
		}
		if err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrRuleFormat, key, err)
		}
	}
	return nil
}

// RuleSet is an ordered collection of rules with fast lookup by ID.
type RuleSet struct {
	rules []Rule
	byID  map[string]int
}

// NewRuleSet returns an initialised, empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{byID: make(map[string]int)}
}

// Add appends a rule to the set and updates the ID index.
func (rs *RuleSet) Add(r Rule) {
	rs.byID[r.ID] = len(rs.rules)
	rs.rules = append(rs.rules, r)
}

// Rules returns all rules in insertion order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// ByID looks up a rule by its unique identifier. The boolean return
// indicates whether a rule with the given ID exists in the set.
func (rs *RuleSet) ByID(id string) (Rule, bool) {
	idx, ok := rs.byID[id]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[idx], true
}

// HasID reports whether the set contains a rule with the given ID.
func (rs *RuleSet) HasID(id string) bool {
	_, ok := rs.byID[id]
	return ok
}
