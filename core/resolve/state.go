// Package resolve runs choice rules against file populations. One task is
// created per rule; a bounded worker pool executes tasks independently and
// returns per-rule match records for the findings aggregator to reduce.
package resolve

import (
	"github.com/electa-hq/electa/core/rules"
)

// MatchState accumulates raw matches for one rule while its task scans
// files. Exactly one of the two sets is populated for a given rule: Indices
// under "or"/"and" semantics, Tokens under "all" semantics. The state is
// owned exclusively by the worker executing the task.
type MatchState struct {
	Indices map[int]struct{}
	Tokens  map[string]struct{}
}

func newMatchState() *MatchState {
	return &MatchState{
		Indices: make(map[int]struct{}),
		Tokens:  make(map[string]struct{}),
	}
}

// add merges a single file's match result into the state. An ordered index
// sequence contributes only its first element (one representative per file);
// a label set is unioned in full.
func (s *MatchState) add(m rules.Match) {
	if len(m.Labels) > 0 {
		for _, l := range m.Labels {
			s.Tokens[l] = struct{}{}
		}
		return
	}
	if len(m.Indices) > 0 {
		s.Indices[m.Indices[0]] = struct{}{}
	}
}

// Record is a snapshot of a rule's match state taken after a file produced a
// match. Later records for the same rule are supersets of earlier ones; the
// aggregator merges them idempotently.
type Record struct {
	Rule    rules.Rule
	Indices map[int]struct{}
	Tokens  map[string]struct{}
}

// snapshot copies the current state into an immutable Record.
func (s *MatchState) snapshot(r rules.Rule) Record {
	rec := Record{
		Rule:    r,
		Indices: make(map[int]struct{}, len(s.Indices)),
		Tokens:  make(map[string]struct{}, len(s.Tokens)),
	}
	for k := range s.Indices {
		rec.Indices[k] = struct{}{}
	}
	for k := range s.Tokens {
		rec.Tokens[k] = struct{}{}
	}
	return rec
}
