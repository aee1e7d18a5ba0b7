package rules

import (
	"errors"
	"testing"
)

const loaderYAML = `
- id: target_sdk
  type: code
  choice_type: or
  selection: 'Target SDK: {}'
  choice:
    - ['"23"', Marshmallow]
  message: Target SDK version.
- id: permissions
  type: manifest
  choice_type: all
  selection: 'Permissions: {}'
  choice:
    - [INTERNET, android.permission.INTERNET]
  message: Requested permissions.
`

func TestLoadRulesFromFile(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "choices.yaml", loaderYAML)

	rs, err := LoadRulesFromFile(p)
	if err != nil {
		t.Fatalf("loading rules: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", rs.Len())
	}
	if !rs.HasID("target_sdk") || !rs.HasID("permissions") {
		t.Fatalf("missing expected rule IDs: %+v", rs.Rules())
	}
}

func TestLoadRulesFromFile_InvalidRule(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bad.yaml", `
- id: broken
  type: code
  selection: '{}'
  choice:
    - [a, A]
`)

	_, err := LoadRulesFromFile(p)
	if !errors.Is(err, ErrPatternKeyMissing) {
		t.Fatalf("expected ErrPatternKeyMissing for missing choice_type, got %v", err)
	}
}

func TestLoadRulesFromFile_Missing(t *testing.T) {
	if _, err := LoadRulesFromFile("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRulesFromDir(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.yaml", `
- id: rule_a
  type: code
  choice_type: or
  selection: '{}'
  choice:
    - [x, X]
  message: a
`)
	writeTemp(t, dir, "b.yml", `
- id: rule_b
  type: code
  choice_type: or
  selection: '{}'
  choice:
    - [y, Y]
  message: b
`)
	writeTemp(t, dir, "ignored.txt", "not yaml")

	rs, err := LoadRulesFromDir(dir)
	if err != nil {
		t.Fatalf("loading dir: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", rs.Len())
	}
	// Lexicographic merge order.
	if rs.Rules()[0].ID != "rule_a" || rs.Rules()[1].ID != "rule_b" {
		t.Fatalf("unexpected order: %+v", rs.Rules())
	}
}

func TestLoadRules_FileOrDir(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "choices.yaml", loaderYAML)

	t.Run("file", func(t *testing.T) {
		rs, err := LoadRules(p)
		if err != nil || rs.Len() != 2 {
			t.Fatalf("rs=%v err=%v", rs, err)
		}
	})
	t.Run("dir", func(t *testing.T) {
		rs, err := LoadRules(dir)
		if err != nil || rs.Len() != 2 {
			t.Fatalf("rs=%v err=%v", rs, err)
		}
	})
}
