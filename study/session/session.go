// Package session records study sessions against documents.
//
// A Recorder ties the counter store to the header synchronizer: it bumps the
// counter, tells the user, and mirrors the new count into the document header.
// The stored counter is authoritative; the header is a best-effort copy.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/study/document"
)

// Counter is the subset of the counter store a Recorder needs.
type Counter interface {
	Get(id string) int
	Increment(id string) (int, error)
}

// Synchronizer mirrors a count into a document.
type Synchronizer interface {
	Sync(doc document.Document, count int) error
}

// Notifier shows a short transient message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Options tunes a Recorder.
type Options struct {
	// Logger receives sync failures. Defaults to the process logger.
	Logger *slog.Logger
}

// Outcome is what a single Record or Show call produced.
type Outcome struct {
	Count int
	// SyncErr is set when the count was saved but the header was not updated.
	SyncErr error
	// Notes are the notifications this call emitted, in order.
	Notes []string
}

// Recorder records study sessions. Record calls are serialized so the
// header of a document always ends on the latest stored count.
type Recorder struct {
	mu       sync.Mutex
	counter  Counter
	sync     Synchronizer
	notifier Notifier
	log      *slog.Logger
}

// NewRecorder wires a Recorder. A nil notifier drops messages.
func NewRecorder(counter Counter, sync Synchronizer, notifier Notifier, opts Options) *Recorder {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	log := opts.Logger
	if log == nil {
		log = logger.L
	}
	return &Recorder{counter: counter, sync: sync, notifier: notifier, log: log}
}

// Record counts one study session for doc and returns the new count.
//
// The counter is persisted before anything else happens. If that fails the
// error is returned and nothing is announced or synced. If only the header
// sync fails, the failure is logged and announced separately and the new
// count is still returned with a nil error.
//
// A nil doc, including a nil pointer of any Document implementation, means
// there is no active document.
func (r *Recorder) Record(doc document.Document) (int, error) {
	out, err := r.RecordOutcome(doc)
	return out.Count, err
}

// RecordOutcome is Record, also returning the notifications of this call and
// any header sync failure.
func (r *Recorder) RecordOutcome(doc document.Document) (Outcome, error) {
	var out Outcome
	if isNil(doc) {
		r.notify(&out, "No active document")
		return out, ErrNoActiveDocument
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count, err := r.counter.Increment(doc.ID())
	if err != nil {
		r.log.Error("failed to persist study count", "doc", doc.ID(), "error", err)
		r.notify(&out, fmt.Sprintf("Failed to save study count for %s: %v", doc.Name(), err))
		return out, err
	}
	out.Count = count
	r.log.Info("recorded study session", "doc", doc.ID(), "count", count)
	r.notify(&out, fmt.Sprintf("Studied %s: %s", doc.Name(), Times(count)))

	if err := r.sync.Sync(doc, count); err != nil {
		out.SyncErr = err
		r.log.Warn("content sync failed", "doc", doc.ID(), "count", count, "error", err)
		r.notify(&out, fmt.Sprintf("Content sync failed for %s: %v", doc.Name(), unwrapAll(err)))
	}
	return out, nil
}

// Show announces the current count for doc without changing anything.
func (r *Recorder) Show(doc document.Document) (int, error) {
	out, err := r.ShowOutcome(doc)
	return out.Count, err
}

// ShowOutcome is Show, also returning the notification it emitted.
func (r *Recorder) ShowOutcome(doc document.Document) (Outcome, error) {
	var out Outcome
	if isNil(doc) {
		r.notify(&out, "No active document")
		return out, ErrNoActiveDocument
	}
	out.Count = r.counter.Get(doc.ID())
	r.notify(&out, fmt.Sprintf("%s has been studied %s", doc.Name(), Times(out.Count)))
	return out, nil
}

func (r *Recorder) notify(out *Outcome, msg string) {
	out.Notes = append(out.Notes, msg)
	r.notifier.Notify(msg)
}

// StatusText is the status indicator text for a count.
func StatusText(count int) string {
	return fmt.Sprintf("Studied: %d", count)
}

// Times renders "1 time" / "N times".
func Times(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

// unwrapAll strips wrapper prefixes so the user sees the root cause.
func unwrapAll(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// isNil catches a nil interface and a nil pointer behind any Document type,
// such as (*document.File)(nil).
func isNil(doc document.Document) bool {
	if doc == nil {
		return true
	}
	v := reflect.ValueOf(doc)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
