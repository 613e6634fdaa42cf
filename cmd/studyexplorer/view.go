package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	// If help overlay is showing, render it
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	if m.confirm.IsVisible() {
		// Recreated each render so the background reflects the latest model
		mainView := NewMainViewModel(&m)
		dialog := overlay.New(
			&m.confirm,
			mainView,
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return dialog.View()
	}

	return m.renderMain()
}

// renderMain renders header, content and status bar
func (m Model) renderMain() string {
	var content string
	switch m.screen {
	case SettingsScreen:
		content = m.renderSettings()
	default:
		content = m.renderDocuments()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderStatus(),
	)
}

// renderHeader renders the title and vault root
func (m Model) renderHeader() string {
	title := "Study Explorer"
	if m.screen == SettingsScreen {
		title = "Study Explorer · Settings"
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render(title),
		"  ",
		pathStyle.Render("Vault: "+m.ws.Vault.Root()),
	)
}

func (m Model) contentHeight() int {
	return max(m.height-HeaderHeight-StatusBarHeight-3, 5)
}

// renderDocuments renders the document list next to the preview pane
func (m Model) renderDocuments() string {
	listWidth := max(int(float64(m.width)*ListWidthRatio), 20)
	previewWidth := max(m.width-listWidth, 20)
	height := m.contentHeight()

	var list strings.Builder
	list.WriteString(tableHeaderStyle.Render(fmt.Sprintf("Documents (%d)", len(m.docs))))
	list.WriteString("\n")
	if len(m.docs) == 0 {
		list.WriteString(zeroCountStyle.Render("No documents in vault"))
	}

	// Keep the cursor inside the visible window
	rows := max(height-1, 1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.docs))
	nameWidth := max(listWidth-12, 8)

	for i := start; i < end; i++ {
		doc := m.docs[i]
		count := m.ws.Store.Get(doc.ID())
		name := truncate(doc.ID(), nameWidth)
		line := fmt.Sprintf("%-*s %4d", nameWidth, name, count)
		switch {
		case i == m.cursor:
			line = tableSelectedStyle.Render(line)
		case count == 0:
			line = zeroCountStyle.Render(line)
		default:
			line = countStyle.Render(line)
		}
		list.WriteString(line)
		if i < end-1 {
			list.WriteString("\n")
		}
	}

	listBox := activePaneStyle.
		Width(listWidth - 4).
		Height(height).
		Render(list.String())

	previewTitle := "Preview"
	if m.active != nil {
		previewTitle = "Preview: " + m.active.Name()
	}
	previewBox := paneStyle.
		Width(previewWidth - 4).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, tableHeaderStyle.Render(previewTitle), m.preview.View()))

	return lipgloss.JoinHorizontal(lipgloss.Top, listBox, previewBox)
}

// renderSettings renders the tracked-documents table with reset controls
func (m Model) renderSettings() string {
	width := max(m.width-4, 30)
	nameWidth := max(width-14, 10)

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-*s %8s", nameWidth, "Document", "Count")))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(zeroCountStyle.Render("No study data yet."))
	}
	total := 0
	for i, e := range m.entries {
		total += e.Count
		line := fmt.Sprintf("%-*s %8d", nameWidth, truncate(e.ID, nameWidth), e.Count)
		if i == m.settingsCursor {
			line = tableSelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.entries) > 0 {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d documents, %d sessions", len(m.entries), total)))
	}

	return activePaneStyle.
		Width(width).
		Height(m.contentHeight()).
		Render(b.String())
}

// renderStatus renders the status indicator with either the latest message
// or context help
func (m Model) renderStatus() string {
	var line strings.Builder
	if m.indicator != "" {
		line.WriteString(indicatorStyle.Render(m.indicator))
		line.WriteString("  ")
	}

	// Show status message if set (takes priority over normal help)
	if m.statusMessage != "" {
		style := messageStyle
		if m.statusWarning {
			style = warningMessageStyle
		}
		line.WriteString(style.Render(m.statusMessage))
		return statusStyle.Width(m.width).Render(line.String())
	}

	var bindings []key.Binding
	switch m.screen {
	case SettingsScreen:
		bindings = []key.Binding{m.keys.Up, m.keys.ResetRow, m.keys.ResetAll, m.keys.Settings, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Record, m.keys.Show, m.keys.Copy, m.keys.Settings, m.keys.Help, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, helpStyle.Render(h.Key+": "+h.Desc))
	}
	line.WriteString(strings.Join(parts, " │ "))
	return statusStyle.Width(m.width).Render(line.String())
}

// renderHelpOverlay renders the keyboard shortcut reference
func (m Model) renderHelpOverlay() string {
	var helpContent strings.Builder

	helpContent.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	helpContent.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Home, m.keys.End, m.keys.PageUp, m.keys.PageDown}},
		{"Study", []key.Binding{m.keys.Record, m.keys.Show, m.keys.Copy}},
		{"Settings", []key.Binding{m.keys.Settings, m.keys.ResetRow, m.keys.ResetAll}},
		{"General", []key.Binding{m.keys.Esc, m.keys.Help, m.keys.Quit}},
	}

	// Key column width for alignment
	const keyWidth = 14
	for _, s := range sections {
		helpContent.WriteString(modalTitleStyle.Render(s.title))
		helpContent.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render(h.Key))
			helpContent.WriteString("  ")
			helpContent.WriteString(helpDescStyle.Render(h.Desc))
			helpContent.WriteString("\n")
		}
		helpContent.WriteString("\n")
	}
	helpContent.WriteString(helpStyle.Render("Press ? or Esc to close"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpContent.String(),
	)
}

// truncate shortens s to width runes with a trailing ellipsis.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
