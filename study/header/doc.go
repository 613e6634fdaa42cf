// Package header keeps the study count inside a document's leading metadata block.
//
// A header block starts at the very first byte of the document with a line of
// exactly "---" and ends at the next line of exactly "---":
//
//	---
//	study_count: 3
//	title: foo
//	---
//	body
//
// # Rewrite rules
//
// Apply evaluates three rules in order and uses the first that matches:
//
//  1. RuleReplace: the block has a study_count line. Only its value changes.
//  2. RuleInsert: the block exists without the field. The field becomes the
//     block's first line.
//  3. RulePrepend: there is no block. A new one holding only the field is
//     prepended, followed by a blank line and the untouched content.
//
// A block that never closes, or a "---" line anywhere but the first line, is
// not a header; rule 3 applies and the document gains a second block above
// the stray one.
//
// Synchronizer applies the rules to a document with a read-modify-write of
// its full text. It is not atomic against concurrent edits; last write wins.
package header
