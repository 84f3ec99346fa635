package extraction

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func docxParagraphs(r io.ReaderAt, size int64) ([]string, error) {
	doc, err := docx.ReadDocxFromMemory(r, size)
	if err != nil {
		return nil, err
	}
	defer func() { _ = doc.Close() }()

	return bodyParagraphs(doc.Editable().GetContent())
}

// bodyParagraphs returns the text of each paragraph that is a direct child of
// w:body, in document order. Paragraphs nested in tables are not included.
func bodyParagraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		stack      []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := wordName(t.Name)
			switch {
			case name == "p" && len(stack) > 0 && stack[len(stack)-1] == "body":
				inPara = true
				current.Reset()
			case inPara && name == "t":
				inText = true
			case inPara && name == "tab":
				current.WriteString("\t")
			case inPara && (name == "br" || name == "cr"):
				current.WriteString("\n")
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch {
			case name == "t":
				inText = false
			case name == "p" && inPara && len(stack) > 0 && stack[len(stack)-1] == "body":
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

// wordName returns the local name for WordprocessingML elements and a
// namespaced name for everything else, so foreign "t" or "p" elements do not match.
func wordName(name xml.Name) string {
	if name.Space == wordNamespace || name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
