package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions lists the file extensions treated as documents.
var DefaultExtensions = []string{".md"}

// Vault is a directory of documents.
type Vault struct {
	root string
	exts []string
}

// OpenVault opens the directory at root. A leading "~" expands to the home directory.
func OpenVault(root string, exts ...string) (*Vault, error) {
	root, err := expandHome(root)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open vault: %s is not a directory", abs)
	}

	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	normalized := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		normalized = append(normalized, e)
	}
	return &Vault{root: abs, exts: normalized}, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string { return v.root }

// Open resolves p (vault-relative or absolute) to a document.
func (v *Vault) Open(p string) (*File, error) {
	rel, err := v.relative(p)
	if err != nil {
		return nil, err
	}
	if !v.isDocument(rel) {
		return nil, fmt.Errorf("%w: %s", ErrNotDocument, p)
	}
	info, err := os.Stat(filepath.Join(v.root, rel))
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotDocument, p)
	}
	return &File{root: v.root, rel: rel}, nil
}

// Lookup returns the document for a stored identifier without requiring the
// file to exist.
func (v *Vault) Lookup(id string) (*File, error) {
	rel, err := v.relative(filepath.FromSlash(id))
	if err != nil {
		return nil, err
	}
	return &File{root: v.root, rel: rel}, nil
}

// List returns every document in the vault sorted by identifier. Hidden
// directories such as .git or .studykit are skipped.
func (v *Vault) List() ([]*File, error) {
	var files []*File
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		if v.isDocument(rel) {
			files = append(files, &File{root: v.root, rel: rel})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID() < files[j].ID() })
	return files, nil
}

func (v *Vault) relative(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotDocument)
	}
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(v.root, p)
	}
	rel, err := filepath.Rel(v.root, filepath.Clean(abs))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
	}
	return rel, nil
}

func (v *Vault) isDocument(rel string) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	for _, e := range v.exts {
		if ext == e {
			return true
		}
	}
	return false
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("document: cannot expand ~ without a home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
