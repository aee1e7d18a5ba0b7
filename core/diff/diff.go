// Package diff compares two findings reports. It identifies rules whose
// resolved choice appeared, disappeared, or changed between runs, allowing
// both the CLI and CI gates to share the same comparison logic.
package diff

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/electa-hq/electa/core/findings"
)

// Change records a rule whose resolved choice differs between two reports.
type Change struct {
	ID     string `json:"id"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result holds the comparison of two findings reports.
type Result struct {
	// Added lists rule IDs resolved only in the new report.
	Added []string `json:"added"`
	// Removed lists rule IDs resolved only in the old report.
	Removed []string `json:"removed"`
	// Changed lists rules resolved in both reports with different choices.
	Changed []Change `json:"changed"`
	// Unchanged counts rules whose resolved choice is identical.
	Unchanged int `json:"unchanged"`
}

// HasDifferences reports whether the two compared reports diverge at all.
func (r *Result) HasDifferences() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Changed) > 0
}

// Compare diffs two finding maps. All output slices are sorted by rule ID.
func Compare(before, after findings.Map) *Result {
	res := &Result{}

	for _, id := range after.IDs() {
		old, ok := before[id]
		if !ok {
			res.Added = append(res.Added, id)
			continue
		}
		if old.Choice != after[id].Choice {
			res.Changed = append(res.Changed, Change{
				ID:     id,
				Before: old.Choice,
				After:  after[id].Choice,
			})
			continue
		}
		res.Unchanged++
	}

	for _, id := range before.IDs() {
		if _, ok := after[id]; !ok {
			res.Removed = append(res.Removed, id)
		}
	}

	sort.Strings(res.Added)
	sort.Strings(res.Removed)
	sort.Slice(res.Changed, func(i, j int) bool { return res.Changed[i].ID < res.Changed[j].ID })
	return res
}

// LoadReport reads a findings JSON report written by the json reporter and
// reconstructs its finding map. Flattened metadata keys are folded back into
// Meta.
func LoadReport(path string) (findings.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}

	var report struct {
		Findings map[string]map[string]any `json:"findings"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	if report.Findings == nil {
		return nil, fmt.Errorf("report %s has no findings object", path)
	}

	fm := make(findings.Map, len(report.Findings))
	for id, obj := range report.Findings {
		var f findings.Finding
		for k, v := range obj {
			switch k {
			case "choice":
				f.Choice, _ = v.(string)
			case "description":
				f.Description, _ = v.(string)
			default:
				if f.Meta == nil {
					f.Meta = make(map[string]any)
				}
				f.Meta[k] = v
			}
		}
		fm[id] = f
	}
	return fm, nil
}
