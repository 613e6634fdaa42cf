package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/studykit/study/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartupActivatesFirstDocument(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{
		"b.md":         "bravo",
		"a.md":         "alpha",
		"notes/c.md":   "charlie",
		".hidden/x.md": "skip",
		"image.png":    "not a note",
	})
	helper.SendWindowSize(120, 40)

	model := helper.GetModel()
	require.Len(t, model.docs, 3)
	assert.Equal(t, "a.md", model.activeID())
	assert.Equal(t, "Studied: 0", model.indicator)

	view := helper.GetView()
	for _, want := range []string{"a.md", "b.md", "notes/c.md", "Studied: 0", "alpha"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "image.png")
}

func TestCursorMoveActivates(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "alpha", "b.md": "bravo"})
	helper.SendWindowSize(120, 40)

	helper.SendKeyRuneAndRun('r')
	helper.SendKeyRuneAndRun('r')
	assert.Equal(t, "Studied: 2", helper.GetModel().indicator)

	helper.SendKey(tea.KeyDown)
	model := helper.GetModel()
	assert.Equal(t, "b.md", model.activeID())
	assert.Equal(t, "Studied: 0", model.indicator, "activation updates the indicator")

	helper.SendKeyRune('k')
	model = helper.GetModel()
	assert.Equal(t, "a.md", model.activeID())
	assert.Equal(t, "Studied: 2", model.indicator)

	// Moving past the ends is a no-op
	helper.SendKey(tea.KeyUp)
	assert.Equal(t, 0, helper.GetModel().cursor)
	helper.SendKeyRune('G')
	assert.Equal(t, 1, helper.GetModel().cursor)
}

func TestRecordQuickAction(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"Notes.md": "hello world"})
	helper.SendWindowSize(120, 40)

	helper.SendKeyRuneAndRun('r')

	model := helper.GetModel()
	assert.Equal(t, "Studied: 1", model.indicator)
	assert.Equal(t, "Studied Notes.md: 1 time", model.statusMessage)
	assert.False(t, model.statusWarning)
	assert.Equal(t, "---\nstudy_count: 1\n---\n\nhello world", helper.ReadFile("Notes.md"))
	assert.Contains(t, helper.GetView(), "study_count: 1", "preview shows the rewritten header")

	helper.SendKeyRuneAndRun('r')
	model = helper.GetModel()
	assert.Equal(t, "Studied: 2", model.indicator)
	assert.Equal(t, "Studied Notes.md: 2 times", model.statusMessage)
	assert.Equal(t, "---\nstudy_count: 2\n---\n\nhello world", helper.ReadFile("Notes.md"))

	// The status message clears itself
	helper.Send(clearStatusMsg{})
	assert.Empty(t, helper.GetModel().statusMessage)
	assert.Equal(t, "Studied: 2", helper.GetModel().indicator)
}

func TestRecordSyncFailureKeepsCount(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"Notes.md": "hello"})
	require.NoError(t, os.Remove(filepath.Join(helper.root, "Notes.md")))

	helper.SendKeyRuneAndRun('r')

	model := helper.GetModel()
	assert.Equal(t, "Studied: 1", model.indicator)
	assert.True(t, model.statusWarning)
	assert.Contains(t, model.statusMessage, "Studied Notes.md: 1 time")
	assert.Contains(t, model.statusMessage, "Content sync failed for Notes.md")
	assert.Equal(t, 1, model.ws.Store.Get("Notes.md"))
}

func TestRecordIgnoredWhileInFlight(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"Notes.md": "hello"})

	first := helper.SendKeyRuneCmd('r')
	require.NotNil(t, first)
	assert.True(t, helper.GetModel().recording)

	// A second press before the first result lands starts nothing
	helper.SendKeyRuneCmd('r')
	model := helper.GetModel()
	assert.Equal(t, "Still recording the previous session", model.statusMessage)
	assert.Equal(t, 0, model.ws.Store.Get("Notes.md"))

	helper.Send(first())
	model = helper.GetModel()
	assert.False(t, model.recording)
	assert.Equal(t, "Studied: 1", model.indicator)
	assert.Equal(t, 1, model.ws.Store.Get("Notes.md"))
	assert.Equal(t, "---\nstudy_count: 1\n---\n\nhello", helper.ReadFile("Notes.md"))

	helper.SendKeyRuneAndRun('r')
	assert.Equal(t, 2, helper.GetModel().ws.Store.Get("Notes.md"))
	assert.Equal(t, "---\nstudy_count: 2\n---\n\nhello", helper.ReadFile("Notes.md"))
}

func TestShowDuringRecordKeepsOwnNotes(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "alpha"})

	cmd := helper.SendKeyRuneCmd('r')
	require.NotNil(t, cmd)
	msg := cmd()

	helper.SendKeyRune('s')
	assert.Equal(t, "a.md has been studied 1 time", helper.GetModel().statusMessage)

	helper.Send(msg)
	model := helper.GetModel()
	assert.Equal(t, "Studied a.md: 1 time", model.statusMessage)
	assert.False(t, model.statusWarning)
}

func TestRecordedWarningFollowsSyncFailure(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "x"})

	helper.Send(recordedMsg{ID: "a.md", Count: 3, Notes: []string{"Studied a.md: 3 times", "Studied a.md: 3 times"}})
	assert.False(t, helper.GetModel().statusWarning, "several notes alone are not a warning")

	helper.Send(recordedMsg{ID: "a.md", Count: 4, SyncFailed: true, Notes: []string{"Content sync failed for a.md: locked"}})
	model := helper.GetModel()
	assert.True(t, model.statusWarning)
	assert.Equal(t, "Studied: 4", model.indicator)
}

func TestRecordWithoutActiveDocument(t *testing.T) {
	helper := NewTestHelper(t, nil)
	helper.SendWindowSize(120, 40)

	model := helper.GetModel()
	assert.Nil(t, model.active)
	assert.Empty(t, model.indicator)

	helper.SendKeyRuneAndRun('r')
	model = helper.GetModel()
	assert.Equal(t, "No active document", model.statusMessage)
	assert.True(t, model.statusWarning)
	assert.Equal(t, 0, model.ws.Store.Len())

	helper.SendKeyRune('s')
	assert.Equal(t, "No active document", helper.GetModel().statusMessage)
}

func TestRecordResultForOtherDocument(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "x", "b.md": "y"})

	// Result arrives after the user moved on
	helper.Send(recordedMsg{ID: "b.md", Count: 5, Notes: []string{"Studied b.md: 5 times"}})
	model := helper.GetModel()
	assert.Equal(t, "a.md", model.activeID())
	assert.Equal(t, "Studied: 0", model.indicator)
	assert.Equal(t, "Studied b.md: 5 times", model.statusMessage)
}

func TestShowIsReadOnly(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "alpha"})
	helper.SendKeyRuneAndRun('r')
	before := helper.ReadFile("a.md")

	helper.SendKeyRune('s')
	model := helper.GetModel()
	assert.Equal(t, "a.md has been studied 1 time", model.statusMessage)
	assert.Equal(t, "Studied: 1", model.indicator)
	assert.Equal(t, before, helper.ReadFile("a.md"))
	assert.Equal(t, 1, model.ws.Store.Get("a.md"))
}

func TestHelpToggle(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "x"})
	helper.SendWindowSize(120, 40)

	helper.SendKeyRune('?')
	require.True(t, helper.GetModel().showHelp)
	view := helper.GetView()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "record session")

	// Other keys are ignored while help is open
	helper.SendKeyRune('r')
	assert.True(t, helper.GetModel().showHelp)
	assert.Equal(t, 0, helper.GetModel().ws.Store.Len())

	helper.SendKey(tea.KeyEsc)
	assert.False(t, helper.GetModel().showHelp)
}

func TestCopyPath(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "x"})

	helper.SendKeyRune('c')
	model := helper.GetModel()
	// The OS clipboard may be unavailable in CI; either outcome is reported
	if !strings.Contains(model.statusMessage, "Copied") &&
		!strings.Contains(model.statusMessage, "Failed to copy path") {
		t.Errorf("unexpected status message %q", model.statusMessage)
	}
}

func TestQuit(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "x"})
	_, cmd := helper.GetModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDocumentEvents(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"b.md": "bravo"})
	helper.SendWindowSize(120, 40)
	ws := helper.GetModel().ws

	// A new note appears before the active one; the cursor follows b.md
	writeVaultFile(t, helper.root, "a.md", "alpha")
	added, err := ws.Vault.Open("a.md")
	require.NoError(t, err)
	helper.Send(docEventMsg{Event: document.Event{Doc: added, Op: document.OpChanged}})

	model := helper.GetModel()
	require.Len(t, model.docs, 2)
	assert.Equal(t, "b.md", model.activeID())
	assert.Equal(t, 1, model.cursor)

	// An external edit of the active note refreshes the preview
	writeVaultFile(t, helper.root, "b.md", "bravo edited")
	active, err := ws.Vault.Open("b.md")
	require.NoError(t, err)
	helper.Send(docEventMsg{Event: document.Event{Doc: active, Op: document.OpChanged}})
	assert.Contains(t, helper.GetView(), "bravo edited")

	// Removing the active note moves activation to a remaining one
	require.NoError(t, os.Remove(filepath.Join(helper.root, "b.md")))
	helper.Send(docEventMsg{Event: document.Event{Doc: active, Op: document.OpRemoved}})
	model = helper.GetModel()
	require.Len(t, model.docs, 1)
	assert.Equal(t, "a.md", model.activeID())
}

func TestWaitForEvent(t *testing.T) {
	helper := NewTestHelper(t, map[string]string{"a.md": "x"})
	model := helper.GetModel()
	assert.Nil(t, model.Init(), "no watcher attached")

	events := make(chan document.Event, 1)
	model.SetEvents(events)
	doc, err := model.ws.Vault.Open("a.md")
	require.NoError(t, err)
	events <- document.Event{Doc: doc, Op: document.OpChanged}

	cmd := model.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, docEventMsg{}, msg)
	assert.Equal(t, "a.md", msg.(docEventMsg).Event.Doc.ID())

	close(events)
	assert.Equal(t, watchClosedMsg{}, model.waitForEvent()())

	updated, _ := model.Update(watchClosedMsg{})
	assert.Nil(t, updated.(Model).waitForEvent())
}
