package tui

import (
	"fmt"
	"sort"
	"strings"
)

// renderDetail renders the detail view for a single resolved rule.
func renderDetail(m *Model) string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return "No rule selected."
	}

	r := m.filtered[m.cursor]

	var b strings.Builder

	// Header.
	b.WriteString(fmt.Sprintf(" %s · %s\n",
		ruleIDStyle.Render(r.id),
		choiceStyle.Render(r.finding.Choice)))
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if r.finding.Description != "" {
		b.WriteString(wrapText(r.finding.Description, m.width-2, " "))
		b.WriteString("\n")
	}

	// Rule definition.
	if r.hasRule {
		b.WriteString(" " + sectionStyle.Render("Rule") + "\n")
		b.WriteString(fmt.Sprintf("   type: %s   choice_type: %s\n", r.rule.Type, r.rule.ChoiceType))
		if r.rule.Selection != "" {
			b.WriteString("   selection: " + r.rule.Selection + "\n")
		}
		if r.rule.Else != "" {
			b.WriteString("   else: " + r.rule.Else + "\n")
		}
		b.WriteString("\n")

		if len(r.rule.Choice) > 0 {
			b.WriteString(" " + sectionStyle.Render("Candidates") + "\n")
			for i, c := range r.rule.Choice {
				label := c.Label
				if strings.Contains(r.finding.Choice, label) {
					label = pickedStyle.Render(label + " ◂")
				}
				b.WriteString(fmt.Sprintf("   %2d. %s %s\n",
					i, label, subtleStyle.Render("("+strings.Join(c.Tokens, " & ")+")")))
			}
			b.WriteString("\n")
		}
	}

	// Pass-through metadata, sorted for a stable view.
	if len(r.finding.Meta) > 0 {
		b.WriteString(" " + sectionStyle.Render("Metadata") + "\n")
		metaKeys := make([]string, 0, len(r.finding.Meta))
		for k := range r.finding.Meta {
			metaKeys = append(metaKeys, k)
		}
		sort.Strings(metaKeys)
		for _, k := range metaKeys {
			b.WriteString(fmt.Sprintf("   %s: %v\n", subtleStyle.Render(k), r.finding.Meta[k]))
		}
		b.WriteString("\n")
	}

	if r.finding.Fingerprint != "" {
		b.WriteString(" " + subtleStyle.Render("fingerprint: "+r.finding.Fingerprint) + "\n\n")
	}

	b.WriteString(helpStyle.Render(" esc back  n/p next/prev  q quit"))
	b.WriteString("\n")

	return b.String()
}

// wrapText wraps text at the given width with the given indent prefix.
func wrapText(text string, width int, indent string) string {
	if width <= 0 {
		width = 78
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(indent)
	lineLen := len(indent)

	for i, word := range words {
		if i > 0 && lineLen+1+len(word) > width {
			b.WriteString("\n" + indent)
			lineLen = len(indent)
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	b.WriteString("\n")
	return b.String()
}
