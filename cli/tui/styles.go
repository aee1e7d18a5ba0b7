package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle    = lipgloss.Color("#FFFFFF")
	colorSubtle   = lipgloss.Color("#666666")
	colorSelected = lipgloss.Color("#7D56F4")
	colorChoice   = lipgloss.Color("#A3BE8C")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelected)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSubtle)

	ruleIDStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	choiceStyle = lipgloss.NewStyle().
			Foreground(colorChoice)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorChoice)

	pickedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#88C0D0"))
)
