package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/joshuapare/studykit/study/document"
)

func TestStatusCommand(t *testing.T) {
	testVault(t, map[string]string{"a.md": "x", "b.md": "y"})
	if _, err := captureOutput(t, func() error { return runRecord([]string{"a.md"}) }); err != nil {
		t.Fatalf("runRecord() error: %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "recorded document", args: []string{"a.md"}, want: "a.md\tStudied: 1\n"},
		{name: "untracked document", args: []string{"b.md"}, want: "b.md\tStudied: 0\n"},
		{name: "no active document", args: nil, want: ""},
		{name: "missing document", args: []string{"c.md"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := captureOutput(t, func() error {
				return runStatus(tt.args)
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("runStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && output != tt.want {
				t.Errorf("runStatus() output = %q, want %q", output, tt.want)
			}
		})
	}
}

func TestFollowStatus(t *testing.T) {
	testVault(t, map[string]string{"a.md": "x"})
	if _, err := captureOutput(t, func() error { return runRecord([]string{"a.md"}) }); err != nil {
		t.Fatalf("runRecord() error: %v", err)
	}

	ws, err := openWorkspace()
	if err != nil {
		t.Fatalf("openWorkspace() error: %v", err)
	}
	doc, err := ws.Vault.Open("a.md")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	// Another process records a second session after this one started.
	if _, err := captureOutput(t, func() error { return runRecord([]string{"a.md"}) }); err != nil {
		t.Fatalf("runRecord() error: %v", err)
	}

	events := make(chan document.Event, 3)
	events <- document.Event{Doc: doc, Op: document.OpChanged}
	events <- document.Event{Doc: doc, Op: document.OpRemoved}
	events <- document.Event{Err: errors.New("queue overflow")}
	close(events)

	var buf bytes.Buffer
	followStatus(ws, events, &buf)

	if got, want := buf.String(), "a.md\tStudied: 2\n"; got != want {
		t.Errorf("followStatus() output = %q, want %q", got, want)
	}
}
