package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRulesFromFile reads a single YAML file containing a list of choice
// rules and returns a validated RuleSet.
func LoadRulesFromFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	var ruleList []Rule
	if err := yaml.Unmarshal(data, &ruleList); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	if err := Validate(ruleList); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}

	rs := NewRuleSet()
	for _, r := range ruleList {
		rs.Add(r)
	}
	return rs, nil
}

// LoadRulesFromDir reads all .yaml and .yml files in the given directory and
// merges them into a single RuleSet. Files are processed in lexicographic
// order for determinism.
func LoadRulesFromDir(dir string) (*RuleSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rules directory %s: %w", dir, err)
	}

	rs := NewRuleSet()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		fileRS, err := LoadRulesFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, r := range fileRS.Rules() {
			rs.Add(r)
		}
	}
	return rs, nil
}

// LoadRules loads rules from a path, which can be a YAML file or a directory
// of YAML files.
func LoadRules(path string) (*RuleSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("rules path %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadRulesFromDir(path)
	}
	return LoadRulesFromFile(path)
}
