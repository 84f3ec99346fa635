// Package extraction converts uploaded résumé documents into plain text.
package extraction

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/career-agent/internal/types"
)

// Error represents a failure reading a document of a recognized format.
type Error struct {
	Format  types.DocumentFormat
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatFromName detects the document format from the file name suffix.
func FormatFromName(name string) types.DocumentFormat {
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return types.FormatPDF
	case strings.HasSuffix(name, ".docx"):
		return types.FormatDOCX
	default:
		return types.FormatUnknown
	}
}

// NewDocument builds an UploadedDocument, deriving its format from name.
func NewDocument(name string, data []byte) types.UploadedDocument {
	return types.UploadedDocument{
		Name:   name,
		Format: FormatFromName(name),
		Data:   data,
	}
}

// Extract returns the plain text of doc. Every page (PDF) or paragraph (DOCX)
// is followed by a newline. Unknown formats yield "" and no error.
func Extract(doc types.UploadedDocument) (string, error) {
	switch doc.Format {
	case types.FormatPDF:
		pages, err := openPDF(bytes.NewReader(doc.Data), int64(len(doc.Data)))
		if err != nil {
			return "", &Error{Format: types.FormatPDF, Message: "failed to read pdf", Cause: err}
		}
		text, err := joinPages(pages)
		if err != nil {
			return "", &Error{Format: types.FormatPDF, Message: "failed to extract page text", Cause: err}
		}
		return text, nil
	case types.FormatDOCX:
		paragraphs, err := docxParagraphs(bytes.NewReader(doc.Data), int64(len(doc.Data)))
		if err != nil {
			return "", &Error{Format: types.FormatDOCX, Message: "failed to read docx", Cause: err}
		}
		return joinLines(paragraphs), nil
	default:
		return "", nil
	}
}

// ExtractFile reads the file at path and extracts its text.
func ExtractFile(path string) (string, types.DocumentFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", types.FormatUnknown, fmt.Errorf("file not found: %w", err)
		}
		return "", types.FormatUnknown, fmt.Errorf("failed to read file: %w", err)
	}

	doc := NewDocument(filepath.Base(path), data)
	text, err := Extract(doc)
	return text, doc.Format, err
}

func joinLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
