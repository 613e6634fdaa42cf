package header

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Delimiter opens and closes a header block.
	Delimiter = "---"
	// Field is the key holding the study count.
	Field = "study_count"
)

// Rule identifies which rewrite Apply performed.
type Rule int

const (
	RuleReplace Rule = iota + 1
	RuleInsert
	RulePrepend
)

func (r Rule) String() string {
	switch r {
	case RuleReplace:
		return "replace"
	case RuleInsert:
		return "insert"
	case RulePrepend:
		return "prepend"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// fieldLine matches the study_count line inside a block body. Group 1 is the
// key and separator, group 2 the value together with any trailing comment.
var fieldLine = regexp.MustCompile(`(?m)^(` + Field + `:[ \t]*)([^\r\n]*?)[ \t]*\r?$`)

// Block locates a leading header inside a document.
type Block struct {
	// Body is the text between the delimiter lines, excluding both.
	Body string
	// BodyStart and BodyEnd are byte offsets of Body in the document.
	BodyStart int
	BodyEnd   int
	// EOL is the line ending of the opening delimiter, "\n" or "\r\n".
	EOL string
}

// Parse finds the leading header block. It reports false when the document
// does not start with a delimiter line or the block is never closed.
func Parse(text string) (Block, bool) {
	var eol string
	switch {
	case strings.HasPrefix(text, Delimiter+"\n"):
		eol = "\n"
	case strings.HasPrefix(text, Delimiter+"\r\n"):
		eol = "\r\n"
	default:
		return Block{}, false
	}

	start := len(Delimiter) + len(eol)
	pos := start
	for pos <= len(text) {
		nl := strings.IndexByte(text[pos:], '\n')
		line := text[pos:]
		if nl >= 0 {
			line = text[pos : pos+nl]
		}
		if strings.TrimSuffix(line, "\r") == Delimiter {
			return Block{Body: text[start:pos], BodyStart: start, BodyEnd: pos, EOL: eol}, true
		}
		if nl < 0 {
			break
		}
		pos += nl + 1
	}
	return Block{}, false
}

type rule struct {
	id    Rule
	apply func(text string, count int) (string, bool)
}

// rules is evaluated top to bottom; the first rule that applies wins.
var rules = []rule{
	{id: RuleReplace, apply: replaceField},
	{id: RuleInsert, apply: insertField},
	{id: RulePrepend, apply: prependBlock},
}

// Apply rewrites text so its header carries count, and reports the rule used.
func Apply(text string, count int) (string, Rule) {
	for _, r := range rules {
		if out, ok := r.apply(text, count); ok {
			return out, r.id
		}
	}
	// unreachable: prependBlock always applies
	return text, 0
}

func replaceField(text string, count int) (string, bool) {
	b, ok := Parse(text)
	if !ok {
		return "", false
	}
	loc := fieldLine.FindStringSubmatchIndex(b.Body)
	if loc == nil {
		return "", false
	}
	value := strconv.Itoa(count)
	if loc[3]-loc[2] == len(Field)+1 {
		// "study_count:" with nothing after the colon
		value = " " + value
	}
	valStart, valEnd := b.BodyStart+loc[4], b.BodyStart+loc[5]
	if i := commentStart(text[valStart:valEnd]); i >= 0 {
		kept := strings.TrimRight(text[valStart:valStart+i], " \t")
		if kept == "" {
			// "study_count: # note" has no value to pad the comment
			value += " "
		}
		valEnd = valStart + len(kept)
	}
	return text[:valStart] + value + text[valEnd:], true
}

// commentStart returns the offset of a YAML comment in a raw scalar value, or
// -1. A '#' opens a comment at the start of the value or after whitespace,
// never inside a quoted scalar.
func commentStart(v string) int {
	i := 0
	if v != "" && (v[0] == '"' || v[0] == '\'') {
		q := v[0]
		i = 1
		for i < len(v) && v[i] != q {
			if q == '"' && v[i] == '\\' {
				i++
			}
			i++
		}
		i++
	}
	for ; i < len(v); i++ {
		if v[i] == '#' && (i == 0 || v[i-1] == ' ' || v[i-1] == '\t') {
			return i
		}
	}
	return -1
}

func insertField(text string, count int) (string, bool) {
	b, ok := Parse(text)
	if !ok {
		return "", false
	}
	return text[:b.BodyStart] + fieldText(count) + b.EOL + text[b.BodyStart:], true
}

func prependBlock(text string, count int) (string, bool) {
	return Delimiter + "\n" + fieldText(count) + "\n" + Delimiter + "\n\n" + text, true
}

func fieldText(count int) string {
	return Field + ": " + strconv.Itoa(count)
}
