package main

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/studykit/cmd/studyexplorer/confirm"
	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/internal/workspace"
	"github.com/joshuapare/studykit/study/document"
	"github.com/joshuapare/studykit/study/session"
	"github.com/joshuapare/studykit/study/store"
)

// Screen is the view currently filling the content area
type Screen int

const (
	DocumentsScreen Screen = iota
	SettingsScreen
)

// Layout constants
const (
	HeaderHeight    = 2 // Title line plus margin
	StatusBarHeight = 2 // Status line plus margin
	ListWidthRatio  = 0.4
)

// resetAllDialog identifies the reset-all confirmation
const resetAllDialog = "reset-all"

// Model is the main application model
type Model struct {
	ws   *workspace.Workspace
	keys KeyMap

	// Documents screen
	docs   []*document.File
	cursor int
	active document.Document

	// Status indicator owned by the explorer
	indicator string
	// A record command is in flight
	recording bool

	// Settings screen
	entries        []store.Entry
	settingsCursor int

	screen  Screen
	preview viewport.Model
	confirm confirm.Model

	width  int
	height int

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string
	statusWarning bool

	// Vault change events, nil when watching is disabled
	events <-chan document.Event

	err error
}

// NewModel creates a new TUI model over an opened workspace.
func NewModel(ws *workspace.Workspace) Model {
	m := Model{
		ws:      ws,
		keys:    DefaultKeyMap(),
		screen:  DocumentsScreen,
		preview: viewport.New(0, 0),
		confirm: confirm.New(),
	}
	m.reloadDocuments("")
	m.entries = ws.Store.Entries()
	return m
}

// SetEvents attaches the vault watcher. Call before the program starts.
func (m *Model) SetEvents(events <-chan document.Event) {
	m.events = events
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// reloadDocuments re-lists the vault and keeps the cursor on keepID when it
// still exists.
func (m *Model) reloadDocuments(keepID string) {
	docs, err := m.ws.Vault.List()
	if err != nil {
		logger.Error("failed to list vault", "error", err)
		m.err = err
		return
	}
	m.docs = docs

	m.cursor = min(m.cursor, max(len(docs)-1, 0))
	if keepID != "" {
		for i, d := range docs {
			if d.ID() == keepID {
				m.cursor = i
				break
			}
		}
	}
	m.activate()
}

// activate makes the document under the cursor the active document and
// refreshes everything that depends on it.
func (m *Model) activate() {
	if len(m.docs) == 0 {
		m.active = nil
		m.indicator = ""
		m.preview.SetContent("")
		return
	}

	doc := m.docs[m.cursor]
	m.active = doc
	m.refreshIndicator()

	text, err := doc.Read()
	if err != nil {
		logger.Warn("failed to read document", "id", doc.ID(), "error", err)
		text = errorStyle.Render(err.Error())
	}
	m.preview.SetContent(text)
	m.preview.GotoTop()
	logger.Debug("document activated", "id", doc.ID())
}

// refreshIndicator renders the status indicator for the active document.
func (m *Model) refreshIndicator() {
	if m.active == nil {
		m.indicator = ""
		return
	}
	m.indicator = session.StatusText(m.ws.Store.Get(m.active.ID()))
}

// refreshEntries re-reads the settings table after a mutation.
func (m *Model) refreshEntries() {
	m.entries = m.ws.Store.Entries()
	m.settingsCursor = min(m.settingsCursor, max(len(m.entries)-1, 0))
}

// activeID returns the identifier of the active document, or "".
func (m Model) activeID() string {
	if m.active == nil {
		return ""
	}
	return m.active.ID()
}

// Messages

type clearStatusMsg struct{}

// recordedMsg carries the outcome of a record action.
type recordedMsg struct {
	ID         string
	Count      int
	Err        error
	SyncFailed bool
	Notes      []string
}

// docEventMsg wraps a vault watcher event.
type docEventMsg struct {
	Event document.Event
}

// watchClosedMsg is sent once the watcher channel closes.
type watchClosedMsg struct{}
