package extraction

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pageSource is a page-addressable document with 1-based page numbers.
type pageSource interface {
	NumPage() int
	PageText(num int) (string, error)
}

type pdfPages struct {
	reader *pdf.Reader
}

func openPDF(r io.ReaderAt, size int64) (pageSource, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &pdfPages{reader: reader}, nil
}

func (p *pdfPages) NumPage() int {
	return p.reader.NumPage()
}

// PageText returns "" for pages without a content dictionary.
func (p *pdfPages) PageText(num int) (string, error) {
	page := p.reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func joinPages(pages pageSource) (string, error) {
	var sb strings.Builder
	for i := 1; i <= pages.NumPage(); i++ {
		text, err := pages.PageText(i)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
