package tui

import (
	"fmt"
	"strings"
)

// renderList renders the resolved-choice list view.
func renderList(m *Model) string {
	var b strings.Builder

	// Header.
	title := titleStyle.Render(fmt.Sprintf(" electa — %d resolved", len(m.filtered)))
	if len(m.rows) != len(m.filtered) {
		title += subtleStyle.Render(fmt.Sprintf(" (of %d total)", len(m.rows)))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if m.search != "" {
		b.WriteString(subtleStyle.Render(" Search: ") + "[" + m.search + "]")
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(subtleStyle.Render("  No resolved choices match the current filter.\n"))
	} else {
		// Calculate visible window around the cursor.
		visibleLines := m.height - 7
		if visibleLines < 1 {
			visibleLines = 1
		}
		start := m.cursor - visibleLines/2
		if start < 0 {
			start = 0
		}
		end := start + visibleLines
		if end > len(m.filtered) {
			end = len(m.filtered)
			start = end - visibleLines
			if start < 0 {
				start = 0
			}
		}

		for i := start; i < end; i++ {
			b.WriteString(renderRow(m.filtered[i], i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.searching {
		b.WriteString("\n")
		b.WriteString(" Search: " + m.search + "█")
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑↓ navigate  enter detail  / search  q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderRow renders a single resolved rule line in the list.
func renderRow(r row, selected bool) string {
	ruleID := ruleIDStyle.Render(fmt.Sprintf("%-16s", r.id))
	line := fmt.Sprintf(" %s  %s", ruleID, choiceStyle.Render(r.finding.Choice))

	if selected {
		return selectedStyle.Render("▸") + line
	}
	return " " + line
}
