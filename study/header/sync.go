package header

import (
	"fmt"

	"github.com/joshuapare/studykit/study/document"
)

// SyncError reports a failed read or write during header synchronization.
type SyncError struct {
	ID  string
	Op  string // "read" or "write"
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("header: %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Synchronizer writes study counts into document headers.
type Synchronizer struct{}

// NewSynchronizer returns a Synchronizer.
func NewSynchronizer() *Synchronizer { return &Synchronizer{} }

// Sync reads doc, applies the rewrite rules for count and writes the full
// text back.
func (s *Synchronizer) Sync(doc document.Document, count int) error {
	_, err := s.SyncRule(doc, count)
	return err
}

// SyncRule is Sync that also reports which rule rewrote the document.
func (s *Synchronizer) SyncRule(doc document.Document, count int) (Rule, error) {
	text, err := doc.Read()
	if err != nil {
		return 0, &SyncError{ID: doc.ID(), Op: "read", Err: err}
	}
	out, rule := Apply(text, count)
	if err := doc.Write(out); err != nil {
		return 0, &SyncError{ID: doc.ID(), Op: "write", Err: err}
	}
	return rule, nil
}
