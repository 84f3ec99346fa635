package extraction

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/career-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePages struct {
	pages []string
	fail  int
}

func (f *fakePages) NumPage() int { return len(f.pages) }

func (f *fakePages) PageText(num int) (string, error) {
	if num == f.fail {
		return "", errors.New("bad content stream")
	}
	return f.pages[num-1], nil
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name string
		want types.DocumentFormat
	}{
		{"resume.pdf", types.FormatPDF},
		{"resume.docx", types.FormatDOCX},
		{"resume.doc", types.FormatUnknown},
		{"resume.txt", types.FormatUnknown},
		{"resume.PDF", types.FormatUnknown},
		{"pdf", types.FormatUnknown},
		{"", types.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromName(tt.name))
		})
	}
}

func TestJoinPages_OrderAndSeparators(t *testing.T) {
	pages := &fakePages{pages: []string{"first", "second", "", "fourth"}}

	text, err := joinPages(pages)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n\nfourth\n", text)

	segments := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, segments, 4)

	again, err := joinPages(pages)
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestJoinPages_Error(t *testing.T) {
	_, err := joinPages(&fakePages{pages: []string{"a", "b"}, fail: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestExtract_UnknownFormatIsNoOp(t *testing.T) {
	for _, name := range []string{"resume.txt", "resume.rtf", "noext"} {
		text, err := Extract(NewDocument(name, []byte("%PDF-1.4 not really")))
		assert.NoError(t, err)
		assert.Equal(t, "", text)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract(NewDocument("resume.pdf", []byte("definitely not a pdf")))
	require.Error(t, err)

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, types.FormatPDF, extractErr.Format)
}

func TestExtract_CorruptDOCX(t *testing.T) {
	_, err := Extract(NewDocument("resume.docx", []byte("PK not a zip")))
	require.Error(t, err)

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, types.FormatDOCX, extractErr.Format)
}

func TestExtract_PDF(t *testing.T) {
	data := buildPDF([]string{"Alpha page", "Bravo page", "Charlie page"})

	text, err := Extract(NewDocument("resume.pdf", data))
	require.NoError(t, err)
	// the reader starts each page's text with the line break of its first Td
	assert.Equal(t, "\nAlpha page\n\nBravo page\n\nCharlie page\n", text)

	again, err := Extract(NewDocument("resume.pdf", data))
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestExtract_DOCX(t *testing.T) {
	body := `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Security </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>SIEM</w:t></w:r></w:p>`
	data := buildDOCX(t, body)

	text, err := Extract(NewDocument("resume.docx", data))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSecurity Engineer\n\nSkills:\tSIEM\n", text)
}

func TestBodyParagraphs_InvalidXML(t *testing.T) {
	_, err := bodyParagraphs("<w:document><w:body><w:p>")
	assert.Error(t, err)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "resume.docx")
	require.NoError(t, os.WriteFile(path, buildDOCX(t, `<w:p><w:r><w:t>Hello</w:t></w:r></w:p>`), 0644))

	text, format, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.FormatDOCX, format)
	assert.Equal(t, "Hello\n", text)

	_, _, err = ExtractFile(filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

// buildDOCX writes a minimal word-processing package around body.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="` + wordNamespace + `"><w:body>` + body + `<w:sectPr/></w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(pages []string) []byte {
	var objects []string
	n := len(pages)

	// 1: catalog, 2: page tree, 3: font, then a page and content stream per page
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
