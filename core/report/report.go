// Package report serializes resolved findings to output formats. The primary
// implementation is JSONReporter, which produces a deterministic JSON report
// suitable for CI pipelines and downstream tooling.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/electa-hq/electa/core/findings"
)

// Reporter defines the contract for serializing a finding map into a byte
// representation. Each output format (JSON, SARIF, table) implements this
// interface.
type Reporter interface {
	Generate(fm findings.Map) ([]byte, error)
}

// Meta contains metadata about the report itself, including schema version,
// generation timestamp, and tool identification.
type Meta struct {
	SchemaVersion string `json:"schema_version"`
	GeneratedAt   string `json:"generated_at"`
	ToolName      string `json:"tool_name"`
	ToolVersion   string `json:"tool_version"`
}

// JSONReport is the top-level structure serialized to JSON. It pairs report
// metadata with the finding map keyed by rule ID.
type JSONReport struct {
	Meta     Meta         `json:"meta"`
	Findings findings.Map `json:"findings"`
}

// JSONReporter produces deterministic JSON output from a finding map. Map
// keys serialize in sorted order, so output is stable across runs apart from
// the GeneratedAt timestamp.
type JSONReporter struct {
	ToolVersion string
}

// NewJSONReporter returns a JSONReporter configured with the given tool
// version string. The version is embedded in the report metadata.
func NewJSONReporter(version string) *JSONReporter {
	return &JSONReporter{ToolVersion: version}
}

// Generate serializes the finding map to pretty-printed JSON with 2-space
// indentation.
func (r *JSONReporter) Generate(fm findings.Map) ([]byte, error) {
	// Guarantee a non-nil map so JSON output renders "findings": {} rather
	// than "findings": null when nothing resolved.
	if fm == nil {
		fm = findings.Map{}
	}

	report := JSONReport{
		Meta: Meta{
			SchemaVersion: "1.0.0",
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			ToolName:      "electa",
			ToolVersion:   r.ToolVersion,
		},
		Findings: fm,
	}

	return json.MarshalIndent(report, "", "  ")
}

// WriteToFile generates the JSON report and writes it to the specified path
// with 0644 permissions. Parent directories must already exist.
func (r *JSONReporter) WriteToFile(fm findings.Map, path string) error {
	data, err := r.Generate(fm)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
