package store

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned when a counter operation is given an empty document id.
	ErrEmptyID = errors.New("store: empty document id")

	// ErrMalformed reports persisted data that could not be fully used. The
	// store still initializes with whatever was valid.
	ErrMalformed = errors.New("store: malformed persisted data")
)

// PersistenceError wraps a failed load or save of the settings blob.
type PersistenceError struct {
	Op  string // "load", "increment", "reset", "reset-all", "flush"
	ID  string // document id, empty for whole-store operations
	Err error
}

func (e *PersistenceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
