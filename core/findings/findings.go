// Package findings reduces raw per-rule match records into the final
// finding map. Each rule resolves to at most one finding; the map is the
// terminal artifact of a scan invocation and holds no state across runs.
package findings

import (
	"encoding/json"
	"sort"
)

// Finding is the resolved output record for one rule: the formatted choice,
// the rule's human-readable description, and every pass-through metadata
// field the rule carried.
type Finding struct {
	Choice      string
	Description string
	Fingerprint string
	Meta        map[string]any
}

// MarshalJSON renders the finding as a flat object: choice, description,
// and the pass-through metadata keys at the top level.
func (f Finding) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(f.Meta)+2)
	for k, v := range f.Meta {
		obj[k] = v
	}
	obj["choice"] = f.Choice
	obj["description"] = f.Description
	return json.Marshal(obj)
}

// Map is the finding mapping keyed by rule ID. A missing key means the rule
// produced no finding, which is not an error.
type Map map[string]Finding

// IDs returns the rule IDs present in the map, sorted for deterministic
// iteration.
func (m Map) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
