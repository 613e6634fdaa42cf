// Package confirm is a yes/no dialog rendered as a modal over the main view.
package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF4B4B")).
			Padding(1, 2).
			Background(lipgloss.Color("#1A1A1A"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF4B4B")).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// ResultMsg reports the user's answer for the dialog identified by ID.
type ResultMsg struct {
	ID        string
	Confirmed bool
}

// Model asks a single yes/no question.
type Model struct {
	id      string
	title   string
	message string
	width   int
	visible bool

	yes key.Binding
	no  key.Binding
}

// New creates a hidden dialog.
func New() Model {
	return Model{
		yes: key.NewBinding(key.WithKeys("y", "Y", "enter")),
		no:  key.NewBinding(key.WithKeys("n", "N", "esc", "q")),
	}
}

// Show opens the dialog. id is echoed back in the ResultMsg.
func (m *Model) Show(id, title, message string) {
	m.id = id
	m.title = title
	m.message = message
	m.visible = true
}

// Hide closes the dialog without answering.
func (m *Model) Hide() {
	m.visible = false
}

// IsVisible reports whether the dialog is open.
func (m *Model) IsVisible() bool {
	return m.visible
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update closes the dialog on y/enter or n/esc and emits a ResultMsg.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		var confirmed bool
		switch {
		case key.Matches(msg, m.yes):
			confirmed = true
		case key.Matches(msg, m.no):
			confirmed = false
		default:
			return m, nil
		}
		m.visible = false
		result := ResultMsg{ID: m.id, Confirmed: confirmed}
		return m, func() tea.Msg { return result }
	}
	return m, nil
}

// View renders the dialog box.
func (m *Model) View() string {
	width := 50
	if m.width > 0 && m.width < width+8 {
		width = max(m.width-8, 20)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(m.message))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("y/enter: confirm │ n/esc: cancel"))
	return modalStyle.Render(b.String())
}
