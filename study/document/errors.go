package document

import "errors"

var (
	// ErrOutsideVault is returned when a path resolves outside the vault root.
	ErrOutsideVault = errors.New("document: path is outside the vault")

	// ErrNotDocument is returned for directories and files with an untracked extension.
	ErrNotDocument = errors.New("document: not a document")
)
