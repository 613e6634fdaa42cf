package session

import "errors"

// ErrNoActiveDocument is returned when a record or show action runs without a document.
var ErrNoActiveDocument = errors.New("session: no active document")
