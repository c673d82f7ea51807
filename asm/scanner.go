package asm

import (
	"strings"
	"unicode"
)

const (
	commentMarker  = '#'
	labelDelimiter = ':'
)

// Line is one source line after comments and the label prefix have been
// stripped.
type Line struct {
	Label    string
	HasLabel bool
	Tokens   []string
}

// IsInstruction reports whether the line occupies an address.
func (l Line) IsInstruction() bool {
	return len(l.Tokens) > 0
}

// Mnemonic returns the first token, lowercased.
func (l Line) Mnemonic() string {
	if !l.IsInstruction() {
		return ""
	}

	return strings.ToLower(l.Tokens[0])
}

// Operands returns the tokens after the mnemonic.
func (l Line) Operands() []string {
	if !l.IsInstruction() {
		return nil
	}

	return l.Tokens[1:]
}

// ScanLine splits one raw source line. Operands may be separated by
// whitespace, commas or both.
func ScanLine(raw string) Line {
	if i := strings.IndexByte(raw, commentMarker); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)

	var line Line
	if i := strings.IndexByte(raw, labelDelimiter); i >= 0 {
		line.Label = strings.TrimSpace(raw[:i])
		line.HasLabel = true
		raw = raw[i+1:]
	}

	line.Tokens = strings.FieldsFunc(raw, isSeparator)

	return line
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

func validLabel(name string) bool {
	if name == "" {
		return false
	}

	return !strings.ContainsFunc(name, unicode.IsSpace)
}
