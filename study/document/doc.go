// Package document models the notes vault that study sessions are recorded against.
//
// A Vault is a directory tree of Markdown files. Each file is exposed as a
// Document with a stable identifier, a display name, and whole-text read and
// write access:
//
//	v, err := document.OpenVault("~/notes")
//	doc, err := v.Open("courses/Notes.md")
//	text, err := doc.Read()
//
// Identifiers are vault-relative, slash-separated and NFC-normalised, so the
// same note maps to the same counter key on every platform.
//
// Vault.Watch streams change events for Markdown files, which the presentation
// layer treats as document activations.
package document
