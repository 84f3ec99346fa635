// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewLines is the number of extracted text lines shown in a preview
	previewLines = 8
)

// Printer handles formatted output for CLI commands
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintJobResults outputs one box per search result, in order, with the
// apply link printed in full beneath each posting.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobResults(query string, results []types.JobResult) {
	if len(results) == 0 {
		p.printBox("NO JOBS FOUND", "Query: "+query)
		return
	}

	fmt.Fprintf(p.out, "%d result(s) for: %s\n\n", len(results), query)
	for i, result := range results {
		if result.IsError() {
			p.printBox(fmt.Sprintf("#%d  ERROR", i+1), fmt.Sprintf("URL:   %s\nError: %s", result.Err.URL, result.Err.Error))
		} else {
			p.PrintJobRecord(i+1, result.Job)
		}
		fmt.Fprintln(p.out)
	}
}

// PrintJobRecord outputs a single posting. Absent fields print as "Not Found".
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobRecord(position int, record *types.JobRecord) {
	if record == nil {
		return
	}
	view := record.View()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:     %s\n", view.Company))
	sb.WriteString(fmt.Sprintf("Location:    %s\n", view.Location))
	sb.WriteString(fmt.Sprintf("Experience:  %s\n", view.Experience))
	sb.WriteString(fmt.Sprintf("Salary:      %s\n", view.Salary))
	sb.WriteString(fmt.Sprintf("Skills:      %s", view.Skills))

	p.printBox(fmt.Sprintf("#%d  %s", position, view.JobRole), sb.String())
	fmt.Fprintf(p.out, "Apply: %s\n", view.ApplyLink)
}

// PrintExtraction outputs a summary of extracted résumé text with a short preview.
func (p *Printer) PrintExtraction(filename string, format types.DocumentFormat, text string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:        %s\n", filename))
	sb.WriteString(fmt.Sprintf("Format:      %s\n", format))
	sb.WriteString(fmt.Sprintf("Characters:  %d\n", utf8.RuneCountInString(text)))

	if text == "" {
		sb.WriteString("\n(no text extracted)")
		p.printBox("EXTRACTED RESUME", sb.String())
		return
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	sb.WriteString(fmt.Sprintf("Lines:       %d\n\n", len(lines)))
	count := min(len(lines), previewLines)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	if len(lines) > previewLines {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-previewLines))
	}

	p.printBox("EXTRACTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}
