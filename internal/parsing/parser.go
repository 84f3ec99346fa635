// Package parsing turns fetched job pages into normalized job records.
package parsing

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/career-agent/internal/fetch"
	"github.com/jonathan/career-agent/internal/selectors"
	"github.com/jonathan/career-agent/internal/types"
)

// Parser extracts JobRecords using a selector table.
type Parser struct {
	table *selectors.Table
}

// New creates a parser. A nil table uses selectors.Default().
func New(table *selectors.Table) *Parser {
	if table == nil {
		table = selectors.Default()
	}
	return &Parser{table: table}
}

// Parse extracts a JobRecord from html. Absent elements leave the field
// missing; only an unparseable document yields an ErrorRecord. Field text is
// the matched element's text passed through CleanText, so surrounding
// whitespace is trimmed and inner runs collapse to one space.
func (p *Parser) Parse(html string, sourceURL string) types.JobResult {
	record, err := p.parse(html, sourceURL)
	if err != nil {
		return types.JobFailed(sourceURL, err.Error())
	}
	return types.JobOK(record)
}

// FetchAndParse fetches sourceURL and parses the page. Fetch failures are
// returned as ErrorRecords, never as errors.
func (p *Parser) FetchAndParse(ctx context.Context, fetcher fetch.Fetcher, sourceURL string) types.JobResult {
	result, err := fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return types.JobFailed(sourceURL, err.Error())
	}
	return p.Parse(result.HTML, sourceURL)
}

func (p *Parser) parse(html string, sourceURL string) (*types.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{URL: sourceURL, Message: "failed to parse HTML", Cause: err}
	}

	record := types.NewJobRecord(sourceURL)
	for _, name := range selectors.Fields {
		*fieldRef(record, name) = p.extract(doc, name)
	}
	return record, nil
}

func (p *Parser) extract(doc *goquery.Document, name selectors.FieldName) types.Field {
	rule, ok := p.table.Rule(name)
	if !ok {
		return types.Missing()
	}

	selection := doc.Find(rule.Selector).First()
	if selection.Length() == 0 {
		return types.Missing()
	}
	return types.Found(CleanText(selection.Text()))
}

func fieldRef(record *types.JobRecord, name selectors.FieldName) *types.Field {
	switch name {
	case selectors.FieldJobRole:
		return &record.JobRole
	case selectors.FieldCompany:
		return &record.Company
	case selectors.FieldLocation:
		return &record.Location
	case selectors.FieldExperience:
		return &record.Experience
	case selectors.FieldSalary:
		return &record.Salary
	case selectors.FieldSkills:
		return &record.Skills
	default:
		panic(fmt.Sprintf("unknown job field %q", name))
	}
}

// CleanText collapses whitespace runs (including non-breaking spaces) to single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
