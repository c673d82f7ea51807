package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/disasm"
	"github.com/sarchlab/mipsasm/isa"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	LineCount    int
	Instructions int

	LintIssues []Issue
	Errors     int
	Warnings   int

	RoundTrip    *RoundTripResult
	RoundTripErr error

	// FormatCounts and MnemonicCounts are empty if the program does not
	// assemble.
	FormatCounts   map[isa.Format]int
	MnemonicCounts map[string]int
}

// Passed reports whether the program has no lint errors and survives the
// round trip.
func (r *VerificationReport) Passed() bool {
	return r.Errors == 0 && r.RoundTripErr == nil
}

// GenerateReport runs lint and the round trip and counts instructions, all
// with the rules of assembler.
func GenerateReport(assembler *asm.Assembler, lines []string) *VerificationReport {
	report := &VerificationReport{
		LineCount:      len(lines),
		FormatCounts:   make(map[isa.Format]int),
		MnemonicCounts: make(map[string]int),
	}

	report.LintIssues = runLint(lines, assembler.Strict())
	for _, issue := range report.LintIssues {
		if issue.Severity == SeverityError {
			report.Errors++
		} else {
			report.Warnings++
		}
	}

	report.RoundTrip, report.RoundTripErr = RoundTrip(assembler, lines)

	words, err := assembler.Assemble(lines)
	if err != nil {
		return report
	}

	report.Instructions = len(words)
	for i, word := range words {
		inst := disasm.DecodeInstruction(word, uint32(i*4))
		report.FormatCounts[inst.Format()]++
		report.MnemonicCounts[inst.Mnemonic()]++
	}

	return report
}

// Write renders the report as tables.
func (r *VerificationReport) Write(w io.Writer, style table.Style) {
	r.writeSummary(w, style)
	r.writeIssues(w, style)
	r.writeStatistics(w, style)
}

func (r *VerificationReport) newTable(w io.Writer, style table.Style, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	t.SetTitle(title)

	return t
}

func (r *VerificationReport) writeSummary(w io.Writer, style table.Style) {
	t := r.newTable(w, style, "Verification Summary")

	roundTrip := "PASSED"
	if r.RoundTripErr != nil {
		roundTrip = "FAILED: " + r.RoundTripErr.Error()
	}

	result := "PASSED"
	if !r.Passed() {
		result = "FAILED"
	}

	t.AppendRows([]table.Row{
		{"Source lines", r.LineCount},
		{"Instructions", r.Instructions},
		{"Lint errors", r.Errors},
		{"Lint warnings", r.Warnings},
		{"Round trip", roundTrip},
		{"Result", result},
	})
	t.Render()
}

func (r *VerificationReport) writeIssues(w io.Writer, style table.Style) {
	if len(r.LintIssues) == 0 {
		return
	}

	t := r.newTable(w, style, "Lint Issues")
	t.AppendHeader(table.Row{"Line", "Type", "Severity", "Message"})

	for _, issue := range r.LintIssues {
		t.AppendRow(table.Row{issue.Line, issue.Type, issue.Severity, issue.Message})
	}

	t.Render()
}

func (r *VerificationReport) writeStatistics(w io.Writer, style table.Style) {
	if r.Instructions == 0 {
		return
	}

	t := r.newTable(w, style, "Instruction Mix")
	t.AppendHeader(table.Row{"Format", "Mnemonic", "Count", "Share"})

	for _, spec := range isa.Instructions() {
		n := r.MnemonicCounts[spec.Mnemonic]
		if n == 0 {
			continue
		}

		t.AppendRow(table.Row{
			spec.Format,
			spec.Mnemonic,
			n,
			fmt.Sprintf("%.1f%%", 100*float64(n)/float64(r.Instructions)),
		})
	}

	t.AppendFooter(table.Row{"", "Total", r.Instructions, "100.0%"})
	t.Render()
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string, style table.Style) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	r.Write(file, style)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}

	return nil
}
