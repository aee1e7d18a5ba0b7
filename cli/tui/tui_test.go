package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/electa-hq/electa/core/findings"
	"github.com/electa-hq/electa/core/rules"
)

func testModel() *Model {
	fm := findings.Map{
		"sdk": {
			Choice:      "Target SDK: Marshmallow",
			Description: "Target SDK version.",
			Fingerprint: "deadbeefdeadbeef",
			Meta:        map[string]any{"severity": "info"},
		},
		"perms": {
			Choice:      "Permissions: [CAMERA]",
			Description: "Requested permissions.",
		},
	}
	rs := rules.NewRuleSet()
	rs.Add(rules.Rule{
		ID:         "sdk",
		Type:       "code",
		ChoiceType: rules.ChoiceOr,
		Selection:  "Target SDK: {}",
		Choice: []rules.Choice{
			{Tokens: []string{"23"}, Label: "Marshmallow"},
			{Tokens: []string{"21"}, Label: "Lollipop"},
		},
		Message: "Target SDK version.",
	})
	return New(fm, rs)
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_RowsSortedByID(t *testing.T) {
	m := testModel()
	if len(m.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.rows))
	}
	if m.rows[0].id != "perms" || m.rows[1].id != "sdk" {
		t.Fatalf("rows must be sorted by rule ID: %v, %v", m.rows[0].id, m.rows[1].id)
	}
}

func TestView_ListShowsChoices(t *testing.T) {
	m := testModel()
	out := m.View()
	if !strings.Contains(out, "sdk") || !strings.Contains(out, "Target SDK: Marshmallow") {
		t.Fatalf("list view missing resolved choice:\n%s", out)
	}
	if !strings.Contains(out, "2 resolved") {
		t.Fatalf("list view missing count:\n%s", out)
	}
}

func TestUpdate_NavigateAndDetail(t *testing.T) {
	m := testModel()

	mm, _ := m.Update(keyMsg("j"))
	m = mm.(*Model)
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1 after j, got %d", m.cursor)
	}

	mm, _ = m.Update(keyMsg("enter"))
	m = mm.(*Model)
	if m.state != detailView {
		t.Fatal("enter must open the detail view")
	}

	out := m.View()
	if !strings.Contains(out, "choice_type: or") {
		t.Fatalf("detail view missing rule definition:\n%s", out)
	}
	if !strings.Contains(out, "Marshmallow") || !strings.Contains(out, "Lollipop") {
		t.Fatalf("detail view must list every candidate:\n%s", out)
	}

	mm, _ = m.Update(keyMsg("esc"))
	m = mm.(*Model)
	if m.state != listView {
		t.Fatal("esc must return to the list view")
	}
}

func TestUpdate_SearchFilters(t *testing.T) {
	m := testModel()

	mm, _ := m.Update(keyMsg("/"))
	m = mm.(*Model)
	if !m.searching {
		t.Fatal("/ must enter search mode")
	}

	for _, ch := range []string{"s", "d", "k"} {
		mm, _ = m.Update(keyMsg(ch))
		m = mm.(*Model)
	}
	mm, _ = m.Update(keyMsg("enter"))
	m = mm.(*Model)

	if len(m.filtered) != 1 || m.filtered[0].id != "sdk" {
		t.Fatalf("expected only sdk after search, got %d rows", len(m.filtered))
	}
}

func TestUpdate_QuitFromList(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q must produce a quit command")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := testModel()
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = mm.(*Model)
	if m.width != 120 || m.height != 40 {
		t.Fatalf("window size not applied: %dx%d", m.width, m.height)
	}
}
