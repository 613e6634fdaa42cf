package main

import "strings"

// joinNotes renders notifications for the one-line status bar.
func joinNotes(notes []string) string {
	return strings.Join(notes, " │ ")
}
