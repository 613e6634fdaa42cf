package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/studykit/internal/config"
	"github.com/joshuapare/studykit/internal/workspace"
)

// TestHelper provides utilities for testing the TUI model
type TestHelper struct {
	t     *testing.T
	root  string
	model Model
}

// NewTestHelper creates a vault with files and a model over it
func NewTestHelper(t *testing.T, files map[string]string) *TestHelper {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		writeVaultFile(t, root, rel, content)
	}

	cfg := config.DefaultConfig()
	cfg.Vault = root
	ws, err := workspace.Open(cfg, nil)
	if err != nil {
		t.Fatalf("workspace.Open: %v", err)
	}
	return &TestHelper{t: t, root: root, model: NewModel(ws)}
}

// SendKey simulates a key press but does not execute async commands
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRuneAndRun presses a key, runs the returned command synchronously
// and feeds its message back. Commands produced by that message (status
// timers) are dropped.
func (h *TestHelper) SendKeyRuneAndRun(r rune) *TestHelper {
	h.t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	if cmd == nil {
		h.t.Fatalf("key %q produced no command", r)
	}
	return h.Send(cmd())
}

// SendKeyRuneCmd presses a key and returns its command without running it
func (h *TestHelper) SendKeyRuneCmd(r rune) tea.Cmd {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

// Send delivers an arbitrary message
func (h *TestHelper) Send(msg tea.Msg) *TestHelper {
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// ReadFile returns the content of a vault file
func (h *TestHelper) ReadFile(rel string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.root, filepath.FromSlash(rel)))
	if err != nil {
		h.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func writeVaultFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
