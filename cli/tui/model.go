// Package tui provides an interactive terminal UI for inspecting resolved
// choices using the Bubble Tea framework.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/electa-hq/electa/core/findings"
	"github.com/electa-hq/electa/core/rules"
)

type viewState int

const (
	listView viewState = iota
	detailView
)

// row pairs a resolved finding with its rule, when the rule is known.
type row struct {
	id      string
	finding findings.Finding
	rule    rules.Rule
	hasRule bool
}

// Model is the root Bubble Tea model for the choice inspector TUI.
type Model struct {
	state     viewState
	rows      []row
	filtered  []row
	search    string
	searching bool
	cursor    int
	width     int
	height    int
}

// New creates a TUI Model from a finding map and the rule set it was
// resolved from. The rule set may be nil.
func New(fm findings.Map, rs *rules.RuleSet) *Model {
	rows := make([]row, 0, len(fm))
	for _, id := range fm.IDs() {
		r := row{id: id, finding: fm[id]}
		if rs != nil {
			r.rule, r.hasRule = rs.ByID(id)
		}
		rows = append(rows, r)
	}

	m := &Model{
		state:  listView,
		rows:   rows,
		width:  80,
		height: 24,
	}
	m.applyFilter()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.state {
	case detailView:
		return renderDetail(m)
	default:
		return renderList(m)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch m.state {
	case listView:
		return m.handleListKey(msg)
	case detailView:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matchesBinding(msg, keys.Quit):
		return m, tea.Quit

	case matchesBinding(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case matchesBinding(msg, keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case matchesBinding(msg, keys.Enter):
		if len(m.filtered) > 0 {
			m.state = detailView
		}

	case matchesBinding(msg, keys.Search):
		m.searching = true
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matchesBinding(msg, keys.Quit):
		return m, tea.Quit

	case matchesBinding(msg, keys.Back):
		m.state = listView

	case matchesBinding(msg, keys.NextItem):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case matchesBinding(msg, keys.PrevItem):
		if m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.applyFilter()
	case "backspace":
		if len(m.search) > 0 {
			m.search = m.search[:len(m.search)-1]
			m.applyFilter()
		}
	default:
		if len(msg.String()) == 1 {
			m.search += msg.String()
			m.applyFilter()
		}
	}
	return m, nil
}

// applyFilter narrows the visible rows to those matching the search string
// against the rule ID, resolved choice, or description.
func (m *Model) applyFilter() {
	if m.search == "" {
		m.filtered = m.rows
	} else {
		q := strings.ToLower(m.search)
		m.filtered = nil
		for _, r := range m.rows {
			if strings.Contains(strings.ToLower(r.id), q) ||
				strings.Contains(strings.ToLower(r.finding.Choice), q) ||
				strings.Contains(strings.ToLower(r.finding.Description), q) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// matchesBinding checks if a key message matches a key binding.
func matchesBinding(msg tea.KeyMsg, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}
