package verify

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/isa"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueSyntax IssueType = "SYNTAX" // Unknown instruction or register, malformed operand
	IssueLabel  IssueType = "LABEL"  // Undefined, duplicate, malformed or unused label
	IssueRange  IssueType = "RANGE"  // Value does not fit its field
	IssueAlign  IssueType = "ALIGN"  // Target not word aligned
)

// Severity tells whether an issue stops the program from assembling.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a single lint issue
type Issue struct {
	Type     IssueType
	Severity Severity
	Line     int // 1-based
	Text     string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] line %d: %s", i.Type, i.Line, i.Message)
}

// RunLint performs static checks on a program and returns every issue it
// finds, ordered by line. Unused labels are warnings; everything else would
// make the strict assembler fail.
func RunLint(lines []string) []Issue {
	return runLint(lines, true)
}

// runLint checks lines for an assembler of the given strictness. Without
// strict checking, issues the assembler resolves on its own are warnings.
func runLint(lines []string, strict bool) []Issue {
	l := linter{
		lines:      lines,
		strict:     strict,
		referenced: make(map[string]bool),
	}

	l.collectLabels()
	l.checkInstructions()
	l.checkUnusedLabels()

	sort.SliceStable(l.issues, func(a, b int) bool {
		return l.issues[a].Line < l.issues[b].Line
	})

	return l.issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}

	return false
}

type labelDef struct {
	name string
	line int
}

type linter struct {
	lines  []string
	strict bool

	symbols    *asm.SymbolTable
	defs       []labelDef
	referenced map[string]bool

	// legacySymbols binds labels the way a non-strict assembler does.
	legacySymbols *asm.SymbolTable

	issues []Issue
}

func (l *linter) report(t IssueType, sev Severity, line int, format string, args ...any) {
	l.issues = append(l.issues, Issue{
		Type:     t,
		Severity: sev,
		Line:     line,
		Text:     l.lines[line-1],
		Message:  fmt.Sprintf(format, args...),
	})
}

// severity gives error severity unless the non-strict assembler accepts
// what the issue describes.
func (l *linter) severity(accepted bool) Severity {
	if !l.strict && accepted {
		return SeverityWarning
	}

	return SeverityError
}

func (l *linter) collectLabels() {
	l.symbols = asm.NewSymbolTable()
	l.legacySymbols = asm.NewSymbolTable()
	address := uint32(0)

	for i, raw := range l.lines {
		line := asm.ScanLine(raw)

		if line.HasLabel {
			_ = l.legacySymbols.Define(line.Label, address)
			l.defineLabel(line.Label, address, i+1)
		}

		if line.IsInstruction() {
			address += 4
		}
	}
}

func (l *linter) defineLabel(name string, address uint32, lineNo int) {
	if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
		l.report(IssueLabel, l.severity(true), lineNo, "malformed label %q", name)
		return
	}

	if prev, ok := l.symbols.Lookup(name); ok {
		l.report(IssueLabel, l.severity(true), lineNo,
			"label %s already defined at 0x%x", name, prev)
		return
	}

	_ = l.symbols.Define(name, address)
	l.defs = append(l.defs, labelDef{name: name, line: lineNo})
}

func (l *linter) checkInstructions() {
	encoder := asm.NewEncoder(l.symbols, true)
	legacy := asm.NewEncoder(l.legacySymbols, false)
	address := uint32(0)

	for i, raw := range l.lines {
		line := asm.ScanLine(raw)
		if !line.IsInstruction() {
			continue
		}

		l.markReferences(line)

		if _, err := encoder.Encode(line.Tokens, address); err != nil {
			_, legacyErr := legacy.Encode(line.Tokens, address)
			l.report(classify(err), l.severity(legacyErr == nil), i+1, "%v", err)
		}

		address += 4
	}
}

func (l *linter) markReferences(line asm.Line) {
	spec, err := isa.Lookup(line.Mnemonic())
	if err != nil {
		return
	}

	ops := line.Operands()

	var target string
	switch {
	case spec.Shape == isa.ShapeBranch && len(ops) >= 3:
		target = ops[2]
	case spec.Shape == isa.ShapeJump && len(ops) >= 1:
		target = ops[0]
	default:
		return
	}

	l.referenced[target] = true
}

func (l *linter) checkUnusedLabels() {
	for _, def := range l.defs {
		if !l.referenced[def.name] {
			l.report(IssueLabel, SeverityWarning, def.line,
				"label %s is never referenced", def.name)
		}
	}
}

func classify(err error) IssueType {
	switch {
	case errors.Is(err, asm.ErrUndefinedLabel), errors.Is(err, asm.ErrDuplicateLabel):
		return IssueLabel
	case errors.Is(err, asm.ErrOutOfRange):
		return IssueRange
	case errors.Is(err, asm.ErrMisalignedTarget):
		return IssueAlign
	default:
		return IssueSyntax
	}
}
