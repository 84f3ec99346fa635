package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/career-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJobRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewJobRecord("https://www.linkedin.com/jobs/view/123456789?refId=abcdefghijklmnopqrstuvwxyz")
	record.JobRole = types.Found("Security Engineer")
	record.Company = types.Found("Acme Corp")

	p.PrintJobRecord(1, record)
	output := buf.String()

	assert.Contains(t, output, "#1  Security Engineer")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Location:    Not Found")
	assert.Contains(t, output, "Salary:      Not Found")
	// apply link is never truncated
	assert.Contains(t, output, "Apply: https://www.linkedin.com/jobs/view/123456789?refId=abcdefghijklmnopqrstuvwxyz\n")
}

func TestPrintJobRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobRecord(1, nil)

	assert.Empty(t, buf.String())
}

func TestPrintJobResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	ok := types.NewJobRecord("https://example.com/1")
	ok.JobRole = types.Found("Pentester")
	results := []types.JobResult{
		types.JobOK(ok),
		types.JobFailed("https://example.com/2", "timeout"),
	}

	p.PrintJobResults("pentest", results)
	output := buf.String()

	assert.Contains(t, output, "2 result(s) for: pentest")
	assert.Contains(t, output, "#1  Pentester")
	assert.Contains(t, output, "#2  ERROR")
	assert.Contains(t, output, "Error: timeout")
	assert.Less(t, strings.Index(output, "#1"), strings.Index(output, "#2"))
}

func TestPrintJobResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobResults("nothing", []types.JobResult{})

	assert.Contains(t, buf.String(), "NO JOBS FOUND")
	assert.Contains(t, buf.String(), "Query: nothing")
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString("line\n")
	}
	p.PrintExtraction("resume.pdf", types.FormatPDF, sb.String())
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED RESUME")
	assert.Contains(t, output, "resume.pdf")
	assert.Contains(t, output, "Format:      pdf")
	assert.Contains(t, output, "Lines:       12")
	assert.Contains(t, output, "... and 4 more lines")
}

func TestPrintExtraction_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExtraction("resume.txt", types.FormatUnknown, "")

	assert.Contains(t, buf.String(), "(no text extracted)")
}

func TestPrintBox_LongLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("Title", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
