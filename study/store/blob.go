package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/joshuapare/studykit/internal/atomicfile"
)

// Blob is the process-wide settings object the store persists into.
type Blob interface {
	// Load returns the stored bytes, or nil, nil when nothing has been stored yet.
	Load() ([]byte, error)
	// Save replaces the stored bytes.
	Save(data []byte) error
}

// FileBlob keeps the blob in a single JSON file.
type FileBlob struct {
	Path string
}

// Load implements Blob.
func (b FileBlob) Load() ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Save implements Blob. Parent directories are created on demand.
func (b FileBlob) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0755); err != nil {
		return err
	}
	return atomicfile.WriteFile(b.Path, data, atomicfile.DefaultPerm)
}

// MemoryBlob keeps the blob in memory. Tests use SetSaveErr to simulate a
// failing save.
type MemoryBlob struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
	saves   int
}

// NewMemoryBlob returns a blob preloaded with initial (which may be nil).
func NewMemoryBlob(initial []byte) *MemoryBlob {
	return &MemoryBlob{data: clone(initial)}
}

// Load implements Blob.
func (b *MemoryBlob) Load() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.data), nil
}

// Save implements Blob.
func (b *MemoryBlob) Save(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data = clone(data)
	b.saves++
	return nil
}

// SetSaveErr makes every following Save fail with err. Pass nil to recover.
func (b *MemoryBlob) SetSaveErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}

// Bytes returns the last successfully saved bytes.
func (b *MemoryBlob) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.data)
}

// Saves counts successful saves.
func (b *MemoryBlob) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
