// Package store keeps the per-document study counters.
//
// The store is an in-memory map from document id to a positive count, persisted
// as a whole through a Blob after every mutation. An absent key means zero; a
// zero entry is never stored. The persisted layout is a single JSON object:
//
//	{"studyData": {"courses/Notes.md": 3}}
//
// Unknown top-level fields are carried through saves untouched.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

const dataField = "studyData"

// Entry is one tracked document and its count.
type Entry struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Store is the counter map. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blob  Blob
	data  map[string]int
	extra map[string]json.RawMessage
	// dirty is set while the in-memory mapping holds changes the last save
	// failed to persist.
	dirty bool
}

// New returns an empty store persisting through blob. Call Init or use Open
// to load existing data.
func New(blob Blob) *Store {
	return &Store{
		blob:  blob,
		data:  make(map[string]int),
		extra: make(map[string]json.RawMessage),
	}
}

// Open loads the blob once and initializes a store from it. A load failure
// still returns a usable empty store alongside the error.
func Open(blob Blob) (*Store, error) {
	s := New(blob)
	raw, err := blob.Load()
	if err != nil {
		return s, &PersistenceError{Op: "load", Err: err}
	}
	return s, s.Init(raw)
}

// Init replaces the in-memory state with raw merged over the defaults. Missing
// or malformed data yields an empty mapping; invalid entries are dropped. The
// returned error wraps ErrMalformed when anything was discarded and is
// informational: the store is initialized either way.
func (s *Store) Init(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]int)
	s.extra = make(map[string]json.RawMessage)
	s.dirty = false

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for k, v := range top {
		if k != dataField {
			s.extra[k] = v
		}
	}

	field, ok := top[dataField]
	if !ok {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(field, &entries); err != nil {
		return fmt.Errorf("%w: %s is not an object: %v", ErrMalformed, dataField, err)
	}

	dropped := 0
	for id, rv := range entries {
		var n int
		if id == "" || json.Unmarshal(rv, &n) != nil || n <= 0 {
			dropped++
			continue
		}
		s.data[id] = n
	}
	if dropped > 0 {
		return fmt.Errorf("%w: dropped %d invalid entries", ErrMalformed, dropped)
	}
	return nil
}

// Get returns the stored count for id, or 0.
func (s *Store) Get(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[id]
}

// Increment bumps the count for id by one and persists the whole mapping.
// On a failed save the in-memory value stays incremented; the next
// successful save carries it.
func (s *Store) Increment(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.data[id] + 1
	s.data[id] = n
	if err := s.saveLocked(); err != nil {
		return 0, &PersistenceError{Op: "increment", ID: id, Err: err}
	}
	return n, nil
}

// Reset forgets id and persists.
func (s *Store) Reset(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	if err := s.saveLocked(); err != nil {
		return &PersistenceError{Op: "reset", ID: id, Err: err}
	}
	return nil
}

// ResetAll clears every counter and persists.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]int)
	if err := s.saveLocked(); err != nil {
		return &PersistenceError{Op: "reset-all", Err: err}
	}
	return nil
}

// Flush persists the current mapping.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(); err != nil {
		return &PersistenceError{Op: "flush", Err: err}
	}
	return nil
}

// Dirty reports whether the mapping holds changes a failed save left
// unpersisted. Flush clears it on success.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Entries lists every tracked document sorted by id.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.data))
	for id, n := range s.data {
		out = append(out, Entry{ID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of tracked documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) saveLocked() error {
	err := s.writeLocked()
	s.dirty = err != nil
	return err
}

func (s *Store) writeLocked() error {
	data, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	top := make(map[string]json.RawMessage, len(s.extra)+1)
	for k, v := range s.extra {
		top[k] = v
	}
	top[dataField] = data

	raw, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return err
	}
	return s.blob.Save(raw)
}
