package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// RuleSet tests
// ---------------------------------------------------------------------------

func TestRuleSet_Add_and_Rules(t *testing.T) {
	rs := NewRuleSet()
	rs.Add(Rule{ID: "sdk", Type: "code", ChoiceType: ChoiceOr})

	if got := rs.Len(); got != 1 {
		t.Fatalf("expected 1 rule, got %d", got)
	}
	if rs.Rules()[0].ID != "sdk" {
		t.Fatalf("expected rule ID sdk, got %s", rs.Rules()[0].ID)
	}
}

func TestRuleSet_ByID(t *testing.T) {
	rs := NewRuleSet()
	rs.Add(Rule{ID: "a", Type: "code"})
	rs.Add(Rule{ID: "b", Type: "code"})

	t.Run("existing", func(t *testing.T) {
		r, ok := rs.ByID("b")
		if !ok {
			t.Fatal("expected to find rule b")
		}
		if r.ID != "b" {
			t.Fatalf("expected ID b, got %s", r.ID)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, ok := rs.ByID("z"); ok {
			t.Fatal("expected rule z to not be found")
		}
	})

	t.Run("has id", func(t *testing.T) {
		if !rs.HasID("a") {
			t.Fatal("expected HasID(a) to be true")
		}
		if rs.HasID("z") {
			t.Fatal("expected HasID(z) to be false")
		}
	})
}

// ---------------------------------------------------------------------------
// YAML decoding tests
// ---------------------------------------------------------------------------

const ruleYAML = `
- id: target_sdk
  type: code
  choice_type: or
  selection: 'Target SDK: {}'
  choice:
    - ['"23"', Marshmallow]
    - ['"21"', Lollipop]
  message: Android target SDK version.
  else: Unknown
  severity: info
  owasp: MSTG-1
`

func TestRule_UnmarshalYAML(t *testing.T) {
	var ruleList []Rule
	if err := yaml.Unmarshal([]byte(ruleYAML), &ruleList); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(ruleList) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(ruleList))
	}
	r := ruleList[0]

	if r.ID != "target_sdk" || r.Type != "code" || r.ChoiceType != ChoiceOr {
		t.Fatalf("unexpected header fields: %+v", r)
	}
	if r.Selection != "Target SDK: {}" {
		t.Fatalf("unexpected selection: %q", r.Selection)
	}
	if r.Else != "Unknown" {
		t.Fatalf("unexpected else: %q", r.Else)
	}
	if len(r.Choice) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(r.Choice))
	}
	if r.Choice[0].Tokens[0] != `"23"` || r.Choice[0].Label != "Marshmallow" {
		t.Fatalf("unexpected first choice: %+v", r.Choice[0])
	}

	// Non-reserved keys land in Meta untouched.
	if r.Meta["severity"] != "info" || r.Meta["owasp"] != "MSTG-1" {
		t.Fatalf("unexpected meta: %+v", r.Meta)
	}
	// Reserved keys never leak into Meta.
	for _, k := range []string{"id", "type", "choice_type", "selection", "choice", "message", "else"} {
		if _, ok := r.Meta[k]; ok {
			t.Fatalf("reserved key %q leaked into meta", k)
		}
	}
}

func TestRule_UnmarshalYAML_AndTokenGroups(t *testing.T) {
	src := `
- id: cipher
  type: code
  choice_type: and
  selection: 'Cipher: {}'
  choice:
    - [[AES, CBC], AES-CBC]
    - [[AES, GCM], AES-GCM]
  message: Cipher mode in use.
`
	var ruleList []Rule
	if err := yaml.Unmarshal([]byte(src), &ruleList); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c := ruleList[0].Choice
	if len(c) != 2 || len(c[0].Tokens) != 2 {
		t.Fatalf("unexpected choices: %+v", c)
	}
	if c[0].Tokens[0] != "AES" || c[0].Tokens[1] != "CBC" || c[0].Label != "AES-CBC" {
		t.Fatalf("unexpected first choice: %+v", c[0])
	}
}

func TestRule_UnmarshalYAML_NotAMapping(t *testing.T) {
	var ruleList []Rule
	err := yaml.Unmarshal([]byte("- 42\n"), &ruleList)
	if err == nil {
		t.Fatal("expected error for scalar rule entry")
	}
	if !errors.Is(err, ErrRuleFormat) {
		t.Fatalf("expected ErrRuleFormat, got %v", err)
	}
}

func TestChoice_UnmarshalYAML_BadShape(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "not a pair", src: `[token]`},
		{name: "mapping token", src: `[{a: b}, label]`},
		{name: "scalar entry", src: `token`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Choice
			err := yaml.Unmarshal([]byte(tt.src), &c)
			if !errors.Is(err, ErrRuleFormat) {
				t.Fatalf("expected ErrRuleFormat, got %v", err)
			}
		})
	}
}

// writeTemp writes a file under dir and returns its path.
func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return p
}
