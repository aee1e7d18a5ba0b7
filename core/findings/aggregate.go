package findings

import (
	"sort"
	"strings"

	"github.com/electa-hq/electa/core/resolve"
	"github.com/electa-hq/electa/core/rules"
)

// Aggregate reduces each rule's match records into at most one finding.
// ruleList and results must be aligned by index, as produced by
// resolve.BuildTasks and Scheduler.Run.
//
// Snapshot records within a task are supersets of their predecessors; they
// are merged with an explicit set union rather than relying on overwrite
// order, so the reduction always sees the most complete state.
func Aggregate(ruleList []rules.Rule, results [][]resolve.Record) Map {
	out := make(Map)
	for i, r := range ruleList {
		var recs []resolve.Record
		if i < len(results) {
			recs = results[i]
		}
		indices, tokens := mergeRecords(recs)

		selection, ok := reduce(r, indices, tokens)
		if !ok {
			continue
		}
		out[r.ID] = newFinding(r, selection)
	}
	return out
}

// mergeRecords unions all snapshots for one rule.
func mergeRecords(recs []resolve.Record) (map[int]struct{}, map[string]struct{}) {
	indices := make(map[int]struct{})
	tokens := make(map[string]struct{})
	for _, rec := range recs {
		for idx := range rec.Indices {
			indices[idx] = struct{}{}
		}
		for tok := range rec.Tokens {
			tokens[tok] = struct{}{}
		}
	}
	return indices, tokens
}

// reduce applies the selection priority order: full token set, then the
// highest-priority matched index, then the rule's else default. The boolean
// return is false when the rule contributes no finding at all.
func reduce(r rules.Rule, indices map[int]struct{}, tokens map[string]struct{}) (string, bool) {
	if len(tokens) > 0 {
		return FormatSelection(r.Selection, formatTokenSet(tokens)), true
	}
	if len(indices) > 0 {
		idx := minIndex(indices, len(r.Choice))
		if idx < 0 {
			return "", false
		}
		return FormatSelection(r.Selection, r.Choice[idx].Label), true
	}
	if r.Else != "" {
		return FormatSelection(r.Selection, r.Else), true
	}
	return "", false
}

// minIndex returns the smallest index that is also a valid choice position,
// or -1 when none is.
func minIndex(indices map[int]struct{}, choiceLen int) int {
	best := -1
	for idx := range indices {
		if idx < 0 || idx >= choiceLen {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	return best
}

// formatTokenSet renders a token set as a sorted listing. The set itself is
// unordered; sorting keeps the output stable under any file scan order.
func formatTokenSet(tokens map[string]struct{}) string {
	list := make([]string, 0, len(tokens))
	for tok := range tokens {
		list = append(list, tok)
	}
	sort.Strings(list)
	return "[" + strings.Join(list, ", ") + "]"
}

// FormatSelection fills the selection template's single {} slot with the
// resolved value.
func FormatSelection(template, value string) string {
	return strings.Replace(template, "{}", value, 1)
}

// newFinding attaches the rule's description and pass-through metadata to
// the resolved selection.
func newFinding(r rules.Rule, selection string) Finding {
	meta := make(map[string]any, len(r.Meta))
	for k, v := range r.Meta {
		meta[k] = v
	}
	return Finding{
		Choice:      selection,
		Description: r.Message,
		Fingerprint: ComputeFingerprint(r.ID, selection),
		Meta:        meta,
	}
}
