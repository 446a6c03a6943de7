package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorError     = lipgloss.Color("9")   // bright red
	colorBorder    = lipgloss.Color("238") // dark gray

	// Pager
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// Markdown headings inside the pager
	styleUserHeading = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleAssistantHeading = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleSectionHeading = lipgloss.NewStyle().
				Foreground(colorDim).
				Bold(true)

	// CLI status lines
	StyleSuccess = lipgloss.NewStyle().Foreground(colorSecondary)
	StyleMuted   = lipgloss.NewStyle().Foreground(colorDim)
	StyleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)
