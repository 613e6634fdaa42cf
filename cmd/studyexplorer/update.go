package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/studykit/cmd/studyexplorer/confirm"
	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/study/document"
	"github.com/joshuapare/studykit/study/session"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePreview()
		m.confirm.Update(msg)
		return m, nil

	case recordedMsg:
		return m.handleRecorded(msg)

	case confirm.ResultMsg:
		if msg.ID == resetAllDialog && msg.Confirmed {
			return m.resetAll()
		}
		return m, nil

	case docEventMsg:
		return m.handleDocEvent(msg.Event)

	case watchClosedMsg:
		logger.Debug("vault watcher stopped")
		m.events = nil
		return m, nil

	case clearStatusMsg:
		// Clear status message
		m.statusMessage = ""
		m.statusWarning = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal confirmation takes every key
	if m.confirm.IsVisible() {
		_, cmd := m.confirm.Update(msg)
		return m, cmd
	}

	// If help is showing, handle help keys
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		// Ignore other keys when help is showing
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		if m.screen == SettingsScreen {
			m.screen = DocumentsScreen
		} else {
			m.refreshEntries()
			m.screen = SettingsScreen
		}
		return m, nil

	case key.Matches(msg, m.keys.Esc) && m.screen == SettingsScreen:
		m.screen = DocumentsScreen
		return m, nil

	case key.Matches(msg, m.keys.Record):
		if m.recording {
			return m.setStatus("Still recording the previous session", true)
		}
		m.recording = true
		return m, m.recordCmd()

	case key.Matches(msg, m.keys.Show):
		return m.show()

	case key.Matches(msg, m.keys.Copy):
		return m.copyPath()

	case key.Matches(msg, m.keys.ResetAll) && m.screen == SettingsScreen:
		if m.ws.Store.Len() == 0 {
			return m.setStatus("No study data to reset", false)
		}
		m.confirm.Show(resetAllDialog, "Reset all study counts",
			fmt.Sprintf("This clears the study count of %d documents. Document headers are not changed.", m.ws.Store.Len()))
		return m, nil

	case key.Matches(msg, m.keys.ResetRow) && m.screen == SettingsScreen:
		return m.resetRow()

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	if m.screen == SettingsScreen {
		return m.moveSettingsCursor(msg), nil
	}
	return m.moveCursor(msg), nil
}

// moveCursor handles list navigation. Every move activates the document
// under the cursor.
func (m Model) moveCursor(msg tea.KeyMsg) Model {
	if len(m.docs) == 0 {
		return m
	}
	prev := m.cursor
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, len(m.docs)-1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.docs) - 1
	}
	if m.cursor != prev {
		m.activate()
	}
	return m
}

func (m Model) moveSettingsCursor(msg tea.KeyMsg) Model {
	if len(m.entries) == 0 {
		return m
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.settingsCursor = max(m.settingsCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.settingsCursor = min(m.settingsCursor+1, len(m.entries)-1)
	case key.Matches(msg, m.keys.Home):
		m.settingsCursor = 0
	case key.Matches(msg, m.keys.End):
		m.settingsCursor = len(m.entries) - 1
	}
	return m
}

// recordCmd runs the quick action off the UI goroutine.
func (m Model) recordCmd() tea.Cmd {
	rec := m.ws.Recorder
	doc := m.active
	return func() tea.Msg {
		out, err := rec.RecordOutcome(doc)
		id := ""
		if doc != nil {
			id = doc.ID()
		}
		return recordedMsg{
			ID:         id,
			Count:      out.Count,
			Err:        err,
			SyncFailed: out.SyncErr != nil,
			Notes:      out.Notes,
		}
	}
}

func (m Model) handleRecorded(msg recordedMsg) (tea.Model, tea.Cmd) {
	m.recording = false
	if msg.Err == nil && msg.ID == m.activeID() {
		m.indicator = session.StatusText(msg.Count)
		m.reloadPreview()
	}
	m.refreshEntries()
	return m.setStatus(joinNotes(msg.Notes), msg.Err != nil || msg.SyncFailed)
}

func (m Model) show() (tea.Model, tea.Cmd) {
	out, err := m.ws.Recorder.ShowOutcome(m.active)
	return m.setStatus(joinNotes(out.Notes), err != nil)
}

func (m Model) copyPath() (tea.Model, tea.Cmd) {
	file, ok := m.active.(*document.File)
	if !ok {
		return m.setStatus("No active document", true)
	}
	if err := clipboard.WriteAll(file.Path()); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return m.setStatus(fmt.Sprintf("Failed to copy path: %v", err), true)
	}
	return m.setStatus("Copied "+file.Path(), false)
}

func (m Model) resetRow() (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	id := m.entries[m.settingsCursor].ID
	if err := m.ws.Store.Reset(id); err != nil {
		logger.Error("reset failed", "id", id, "error", err)
		return m.setStatus(fmt.Sprintf("Failed to reset %s: %v", id, err), true)
	}
	m.refreshEntries()
	m.refreshIndicator()
	return m.setStatus("Reset "+id, false)
}

func (m Model) resetAll() (tea.Model, tea.Cmd) {
	n := m.ws.Store.Len()
	if err := m.ws.Store.ResetAll(); err != nil {
		logger.Error("reset all failed", "error", err)
		return m.setStatus(fmt.Sprintf("Failed to reset study data: %v", err), true)
	}
	m.refreshEntries()
	m.refreshIndicator()
	return m.setStatus(fmt.Sprintf("Cleared %d documents", n), false)
}

// handleDocEvent refreshes the list after a vault change and keeps waiting.
func (m Model) handleDocEvent(ev document.Event) (tea.Model, tea.Cmd) {
	if ev.Err != nil {
		logger.Warn("watch error", "error", ev.Err)
		return m, m.waitForEvent()
	}
	logger.Debug("vault changed", "id", ev.Doc.ID(), "op", ev.Op.String())

	if err := m.ws.Reload(); err != nil {
		logger.Warn("reload failed", "error", err)
	}
	keep := m.activeID()
	if ev.Op == document.OpChanged && keep == ev.Doc.ID() {
		m.refreshIndicator()
		m.reloadPreview()
		m.refreshEntries()
		return m, m.waitForEvent()
	}
	m.reloadDocuments(keep)
	m.refreshEntries()
	return m, m.waitForEvent()
}

// waitForEvent blocks on the watcher for the next event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return docEventMsg{Event: ev}
	}
}

// reloadPreview re-reads the active document without moving the scroll
// position.
func (m *Model) reloadPreview() {
	if m.active == nil {
		return
	}
	text, err := m.active.Read()
	if err != nil {
		logger.Warn("failed to read document", "id", m.active.ID(), "error", err)
		return
	}
	m.preview.SetContent(text)
}

func (m *Model) resizePreview() {
	listWidth := int(float64(m.width) * ListWidthRatio)
	m.preview.Width = max(m.width-listWidth-4, 10)
	m.preview.Height = max(m.height-HeaderHeight-StatusBarHeight-4, 3)
}

// setStatus shows a temporary message and schedules its removal.
func (m Model) setStatus(text string, warning bool) (tea.Model, tea.Cmd) {
	m.statusMessage = text
	m.statusWarning = warning
	// Clear status message after 2 seconds
	return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
