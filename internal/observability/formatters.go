// Package observability provides formatted output for the CV commands.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Amorizz/portfolio/internal/export"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLogLines is how much of a compiler log is shown; the end is where LaTeX reports the error.
	maxLogLines = 20
)

// Printer handles formatted output for the generate command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExportResults outputs one line per language, then the details of every failure.
func (p *Printer) PrintExportResults(results []export.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range results {
		if r.OK() {
			sb.WriteString(fmt.Sprintf("✓ %s  %s (%s)\n", r.Lang, r.PDFPath, r.Duration.Round(time.Millisecond)))
		} else {
			sb.WriteString(fmt.Sprintf("✗ %s  failed while %s\n", r.Lang, LastActiveState(r.History)))
		}
	}
	failed := len(export.FailedResults(results))
	sb.WriteString(fmt.Sprintf("\n%d generated, %d failed", len(results)-failed, failed))

	p.printBox("CV EXPORT", sb.String())

	for _, r := range results {
		if !r.OK() {
			p.PrintFailure(r)
		}
	}
}

// PrintFailure outputs the error of a failed export. For a LaTeX failure it
// also shows where the source was kept and the end of the compiler output.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailure(r export.Result) {
	fmt.Fprintf(p.out, "\n%s: %v\n", r.Lang, r.Err)

	var cerr *export.CompilationError
	if !errors.As(r.Err, &cerr) {
		return
	}
	if cerr.TexPath != "" {
		fmt.Fprintf(p.out, "  LaTeX source kept at %s\n", cerr.TexPath)
	}
	if cerr.Log != "" {
		fmt.Fprintf(p.out, "  compiler output:\n%s\n", tail(cerr.Log, maxLogLines))
	}
}

// LastActiveState is the state an export was in when it failed.
func LastActiveState(history []export.State) export.State {
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Terminal() {
			return history[i]
		}
	}
	return export.Idle
}

// tail returns the last n lines of text, indented.
func tail(text string, n int) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var sb strings.Builder
	if len(lines) > n {
		sb.WriteString(fmt.Sprintf("    ... %d earlier lines\n", len(lines)-n))
		lines = lines[len(lines)-n:]
	}
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("    " + l)
	}
	return sb.String()
}
