package document

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joshuapare/studykit/internal/atomicfile"
	"golang.org/x/text/unicode/norm"
)

// Document is a unit of user content addressable by a stable path.
type Document interface {
	// ID is the stable, path-like identifier used as the counter key.
	ID() string
	// Name is the display name shown to the user.
	Name() string
	// Read returns the full text content.
	Read() (string, error)
	// Write replaces the full text content.
	Write(content string) error
}

// File is a Markdown document inside a Vault.
type File struct {
	root string
	rel  string // vault-relative, OS separators
}

// CleanID turns a relative path into a document identifier.
func CleanID(rel string) string {
	id := filepath.ToSlash(filepath.Clean(rel))
	id = strings.TrimPrefix(id, "./")
	return norm.NFC.String(id)
}

// ID implements Document.
func (f *File) ID() string { return CleanID(f.rel) }

// Name implements Document.
func (f *File) Name() string { return path.Base(f.ID()) }

// Path returns the absolute filesystem path.
func (f *File) Path() string { return filepath.Join(f.root, f.rel) }

// Read implements Document.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.Path())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write implements Document. The file must still exist; a document deleted
// underneath us is reported rather than silently recreated.
func (f *File) Write(content string) error {
	if _, err := os.Stat(f.Path()); err != nil {
		return err
	}
	return atomicfile.WriteFile(f.Path(), []byte(content), atomicfile.DefaultPerm)
}
