package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	accentColor    = lipgloss.Color("#FF00FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginBottom(1)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// List and table styles
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	tableSelectedStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(successColor)

	zeroCountStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Status bar styles
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginTop(1)

	// The study indicator sits at the left of the status bar
	indicatorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	messageStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	warningMessageStyle = lipgloss.NewStyle().
				Foreground(warningColor).
				Bold(true)

	// Help overlay styles
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Width(15)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Error styles
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)
