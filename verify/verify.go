// Package verify checks assembly programs without running them on a core.
//
// It provides three tools:
//
//   - Lint (lint.go) scans every line and collects all diagnostics instead
//     of stopping at the first error.
//     SYNTAX: unknown instructions or registers, malformed operands
//     LABEL: undefined, duplicate, malformed or unused labels
//     RANGE: immediates, offsets and shift amounts that do not fit
//     ALIGN: branch and jump targets that are not word aligned
//
//   - Round trip (roundtrip.go) assembles a program, disassembles the
//     binary and reassembles the listing with the same assembler. The two
//     binaries must match word for word.
//
//   - Report (report.go) combines lint, the round trip and instruction
//     statistics into tables.
//
// # Usage Example
//
//	lines := strings.Split(source, "\n")
//
//	for _, issue := range verify.RunLint(lines) {
//	    log.Printf("[%s] line %d: %s", issue.Type, issue.Line, issue.Message)
//	}
//
//	report := verify.GenerateReport(asm.NewBuilder().Build(), lines)
//	report.Write(os.Stdout, table.StyleLight)
package verify
