// Package sarif generates SARIF 2.1.0 reports from resolved findings.
//
// The Static Analysis Results Interchange Format (SARIF) is an OASIS standard
// for the output of static analysis tools. This package produces SARIF v2.1.0
// documents that are compatible with GitHub Code Scanning, Azure DevOps, and
// other SARIF consumers.
package sarif

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/electa-hq/electa/core/findings"
	"github.com/electa-hq/electa/core/rules"
)

const (
	// sarifVersion is the SARIF specification version produced by this reporter.
	sarifVersion = "2.1.0"

	// sarifSchema is the JSON schema URI for SARIF 2.1.0.
	sarifSchema = "https://docs.oasis-open.org/sarif/sarif/v2.1.0/errata01/os/schemas/sarif-schema-2.1.0.json"

	// toolName is the name of the tool embedded in the SARIF driver.
	toolName = "electa"

	// informationURI is the project URL embedded in the SARIF driver.
	informationURI = "https://github.com/electa-hq/electa"
)

// ---------------------------------------------------------------------------
// SARIF 2.1.0 envelope types
// ---------------------------------------------------------------------------

// Report is the top-level SARIF document containing the schema version
// and one or more analysis runs.
type Report struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of an analysis tool.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool that produced the run.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains identifying information about the tool and the catalog of
// rules it can report on.
type Driver struct {
	Name           string                `json:"name"`
	Version        string                `json:"version"`
	InformationURI string                `json:"informationUri"`
	Rules          []ReportingDescriptor `json:"rules"`
}

// ReportingDescriptor defines a single rule in the SARIF rule catalog.
type ReportingDescriptor struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	ShortDescription     Message        `json:"shortDescription"`
	DefaultConfiguration Configuration  `json:"defaultConfiguration"`
	Properties           map[string]any `json:"properties,omitempty"`
}

// Configuration holds the default severity level for a rule.
type Configuration struct {
	Level string `json:"level"`
}

// Message is a SARIF message object containing human-readable text.
type Message struct {
	Text string `json:"text"`
}

// Result is a single resolved choice expressed in SARIF format. Choice
// resolution aggregates matches across the whole file population, so results
// carry no physical location.
type Result struct {
	RuleID       string            `json:"ruleId"`
	RuleIndex    int               `json:"ruleIndex"`
	Level        string            `json:"level"`
	Message      Message           `json:"message"`
	Fingerprints map[string]string `json:"fingerprints"`
}

// ---------------------------------------------------------------------------
// Reporter implementation
// ---------------------------------------------------------------------------

// Reporter produces SARIF 2.1.0 documents from a finding map. It implements
// the report.Reporter interface.
type Reporter struct {
	// ToolVersion is the version string embedded in the SARIF tool driver.
	ToolVersion string

	// Rules is an optional RuleSet used to populate the SARIF rule catalog.
	// When nil, the catalog is derived from the findings themselves.
	Rules *rules.RuleSet
}

// NewReporter returns a Reporter configured with the given tool version and
// optional rule set. The rule set may be nil.
func NewReporter(version string, ruleSet *rules.RuleSet) *Reporter {
	return &Reporter{
		ToolVersion: version,
		Rules:       ruleSet,
	}
}

// Generate builds a complete SARIF 2.1.0 JSON document from the given
// finding map. Results are sorted by rule ID to guarantee reproducible
// output. The returned bytes are pretty-printed JSON.
func (r *Reporter) Generate(fm findings.Map) ([]byte, error) {
	ids := fm.IDs()

	ruleCatalog, ruleIndex := r.buildRuleCatalog(fm)

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		f := fm[id]
		idx, ok := ruleIndex[id]
		if !ok {
			idx = 0
		}

		results = append(results, Result{
			RuleID:    id,
			RuleIndex: idx,
			Level:     severityToLevel(metaSeverity(f.Meta)),
			Message:   Message{Text: f.Choice},
			Fingerprints: map[string]string{
				"electa/v1": f.Fingerprint,
			},
		})
	}

	report := Report{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:           toolName,
						Version:        r.ToolVersion,
						InformationURI: informationURI,
						Rules:          ruleCatalog,
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// WriteToFile generates the SARIF report and writes it to the specified path
// with 0644 permissions. Parent directories must already exist.
func (r *Reporter) WriteToFile(fm findings.Map, path string) error {
	data, err := r.Generate(fm)
	if err != nil {
		return fmt.Errorf("sarif: generate report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// metaSeverity extracts the severity string from pass-through rule metadata.
// Severity is not a reserved rule key, so its presence is a convention, not a
// guarantee.
func metaSeverity(meta map[string]any) string {
	if s, ok := meta["severity"].(string); ok {
		return s
	}
	return ""
}

// severityToLevel maps a severity string to the corresponding SARIF level.
// Critical and high map to "error", medium to "warning", everything else to
// "note".
func severityToLevel(s string) string {
	switch s {
	case "critical", "high":
		return "error"
	case "medium":
		return "warning"
	default:
		return "note"
	}
}

// buildRuleCatalog constructs the SARIF rules array and a map from rule ID to
// its index within that array. When the reporter has a RuleSet, the catalog
// is populated from it. Otherwise the catalog is derived from the finding map
// itself.
func (r *Reporter) buildRuleCatalog(fm findings.Map) ([]ReportingDescriptor, map[string]int) {
	if r.Rules != nil {
		return r.buildCatalogFromRuleSet()
	}
	return r.buildCatalogFromFindings(fm)
}

// buildCatalogFromRuleSet creates catalog entries for every rule in the
// RuleSet, sorted by rule ID for deterministic output.
func (r *Reporter) buildCatalogFromRuleSet() ([]ReportingDescriptor, map[string]int) {
	allRules := r.Rules.Rules()

	sorted := make([]rules.Rule, len(allRules))
	copy(sorted, allRules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	catalog := make([]ReportingDescriptor, 0, len(sorted))
	index := make(map[string]int, len(sorted))

	for i := range sorted {
		rule := &sorted[i]
		index[rule.ID] = len(catalog)

		desc := ReportingDescriptor{
			ID:   rule.ID,
			Name: rule.ID,
			ShortDescription: Message{
				Text: rule.Message,
			},
			DefaultConfiguration: Configuration{
				Level: severityToLevel(metaSeverity(rule.Meta)),
			},
		}
		if len(rule.Meta) > 0 {
			desc.Properties = rule.Meta
		}

		catalog = append(catalog, desc)
	}

	return catalog, index
}

// buildCatalogFromFindings creates minimal catalog entries derived from the
// rule IDs in the finding map.
func (r *Reporter) buildCatalogFromFindings(fm findings.Map) ([]ReportingDescriptor, map[string]int) {
	ids := fm.IDs()

	catalog := make([]ReportingDescriptor, 0, len(ids))
	index := make(map[string]int, len(ids))

	for _, id := range ids {
		f := fm[id]
		index[id] = len(catalog)
		catalog = append(catalog, ReportingDescriptor{
			ID:   id,
			Name: id,
			ShortDescription: Message{
				Text: f.Description,
			},
			DefaultConfiguration: Configuration{
				Level: severityToLevel(metaSeverity(f.Meta)),
			},
		})
	}

	return catalog, index
}
