// Package workspace assembles the vault, counter store and recorder from
// configuration. Both command-line front ends open one Workspace per process.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joshuapare/studykit/internal/config"
	"github.com/joshuapare/studykit/internal/logger"
	"github.com/joshuapare/studykit/study/document"
	"github.com/joshuapare/studykit/study/header"
	"github.com/joshuapare/studykit/study/session"
	"github.com/joshuapare/studykit/study/store"
)

// Workspace is an opened vault with its counters.
type Workspace struct {
	Config   *config.Config
	Vault    *document.Vault
	Store    *store.Store
	Headers  *header.Synchronizer
	Recorder *session.Recorder
}

// Open opens the vault and loads the counter store once. Malformed counter
// data is logged and replaced by defaults; an unreadable data file is an
// error, since the next save would overwrite it.
func Open(cfg *config.Config, notifier session.Notifier) (*Workspace, error) {
	vault, err := document.OpenVault(config.ExpandHome(cfg.Vault), cfg.Extensions...)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.FileBlob{Path: cfg.DataPath()})
	if err != nil {
		if !errors.Is(err, store.ErrMalformed) {
			return nil, fmt.Errorf("failed to load study data: %w", err)
		}
		logger.Warn("study data partially discarded", "path", cfg.DataPath(), "error", err)
	}
	logger.Debug("workspace opened", "vault", vault.Root(), "data", cfg.DataPath(), "tracked", st.Len())

	headers := header.NewSynchronizer()
	return &Workspace{
		Config:   cfg,
		Vault:    vault,
		Store:    st,
		Headers:  headers,
		Recorder: session.NewRecorder(st, headers, notifier, session.Options{}),
	}, nil
}

// Reload re-reads the counter data, picking up writes from other processes.
//
// Changes a failed save left in memory are flushed first. If they still
// cannot be written the reload is skipped so they are not lost.
func (w *Workspace) Reload() error {
	if w.Store.Dirty() {
		if err := w.Store.Flush(); err != nil {
			logger.Warn("skipping reload with unsaved study data", "path", w.Config.DataPath(), "error", err)
			return nil
		}
		logger.Debug("flushed unsaved study data before reload", "path", w.Config.DataPath())
	}
	raw, err := store.FileBlob{Path: w.Config.DataPath()}.Load()
	if err != nil {
		return fmt.Errorf("failed to reload study data: %w", err)
	}
	if err := w.Store.Init(raw); err != nil {
		logger.Warn("study data partially discarded", "path", w.Config.DataPath(), "error", err)
	}
	return nil
}

// Resolve returns the document at path. An empty path means there is no
// active document and yields a nil Document.
func (w *Workspace) Resolve(path string) (document.Document, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := w.Vault.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DriftStatus classifies how a document header compares to its counter.
type DriftStatus string

const (
	DriftOK            DriftStatus = "ok"
	DriftStale         DriftStatus = "stale"
	DriftMissingHeader DriftStatus = "missing-header"
	DriftMissingFile   DriftStatus = "missing-file"
)

// Drift is one row of a consistency check.
type Drift struct {
	ID     string      `json:"id"`
	Count  int         `json:"count"`
	Header int         `json:"header,omitempty"`
	Status DriftStatus `json:"status"`
}

// Check compares every tracked counter with the value in its document header.
func (w *Workspace) Check() ([]Drift, error) {
	var out []Drift
	for _, e := range w.Store.Entries() {
		d := Drift{ID: e.ID, Count: e.Count}
		doc, err := w.Vault.Lookup(e.ID)
		if err != nil {
			d.Status = DriftMissingFile
			out = append(out, d)
			continue
		}
		text, err := doc.Read()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			d.Status = DriftMissingFile
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", e.ID, err)
		default:
			n, ok := header.Count(text)
			switch {
			case !ok:
				d.Status = DriftMissingHeader
			case n != e.Count:
				d.Header = n
				d.Status = DriftStale
			default:
				d.Header = n
				d.Status = DriftOK
			}
		}
		out = append(out, d)
	}
	return out, nil
}

// Repair rewrites the header of every stale or header-less document.
func (w *Workspace) Repair(drifts []Drift) (int, error) {
	fixed := 0
	for _, d := range drifts {
		if d.Status != DriftStale && d.Status != DriftMissingHeader {
			continue
		}
		doc, err := w.Vault.Lookup(d.ID)
		if err != nil {
			return fixed, err
		}
		if err := w.Headers.Sync(doc, d.Count); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}
