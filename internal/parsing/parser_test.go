package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/career-agent/internal/fetch"
	"github.com/jonathan/career-agent/internal/selectors"
	"github.com/jonathan/career-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkedInPage = `
<html>
	<body>
		<section class="top-card-layout">
			<h1 class="topcard__title">  Senior SOC Analyst </h1>
			<h1>Second heading</h1>
			<h4>
				<a class="topcard__org-name-link topcard__flavor--black-link" href="/company/acme">
					Acme Security
				</a>
				<span class="topcard__flavor topcard__flavor--bullet">Austin,&nbsp;TX</span>
				<span class="topcard__flavor topcard__flavor--bullet">Remote</span>
			</h4>
		</section>
	</body>
</html>`

func TestParse_AllFieldsPresent(t *testing.T) {
	result := New(nil).Parse(linkedInPage, "https://www.linkedin.com/jobs/view/1")
	require.False(t, result.IsError())

	record := result.Job
	assert.Equal(t, types.Found("Senior SOC Analyst"), record.JobRole)
	assert.Equal(t, types.Found("Acme Security"), record.Company)
	assert.Equal(t, types.Found("Austin, TX"), record.Location)
	assert.False(t, record.Experience.Found)
	assert.False(t, record.Salary.Found)
	assert.False(t, record.Skills.Found)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1", record.ApplyLink)
}

func TestParse_AllFieldsMissing(t *testing.T) {
	url := "https://www.indeed.com/viewjob?jk=123"
	result := New(nil).Parse("<html><body><p>Nothing here</p></body></html>", url)
	require.False(t, result.IsError())

	assert.Equal(t, types.JobView{
		JobRole:    "Not Found",
		Company:    "Not Found",
		Location:   "Not Found",
		Experience: "Not Found",
		Salary:     "Not Found",
		Skills:     "Not Found",
		ApplyLink:  url,
	}, result.Job.View())
}

func TestParse_EmptyDocument(t *testing.T) {
	result := New(nil).Parse("", "https://example.com/job")
	require.False(t, result.IsError())
	assert.Equal(t, "https://example.com/job", result.Job.ApplyLink)
	assert.False(t, result.Job.JobRole.Found)
}

func TestParse_ExactClassMatchOnly(t *testing.T) {
	html := `
		<a class="topcard__org-name">Wrong class</a>
		<div class="topcard__org-name-link">Wrong element</div>
		<span class="topcard__flavor">No bullet modifier</span>`

	record := New(nil).Parse(html, "u").Job
	assert.False(t, record.Company.Found)
	assert.False(t, record.Location.Found)
}

func TestParse_EmptyElementIsFound(t *testing.T) {
	record := New(nil).Parse("<h1></h1>", "u").Job
	assert.Equal(t, types.Found(""), record.JobRole)
	assert.Equal(t, "", record.View().JobRole)
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	record := New(nil).Parse("<h1>\n\t  Threat   Hunter\n  (Tier 2)\t</h1>", "u").Job
	assert.Equal(t, types.Found("Threat Hunter (Tier 2)"), record.JobRole)
}

func TestParse_SentinelTextIsDistinguishable(t *testing.T) {
	record := New(nil).Parse("<h1>Not Found</h1>", "u").Job
	assert.True(t, record.JobRole.Found)
	assert.Equal(t, "Not Found", record.JobRole.String())
	assert.False(t, record.Company.Found)
}

func TestParse_CustomSelectorTable(t *testing.T) {
	table, err := selectors.Parse("custom", []byte(`
version: 2
fields:
  job_role:
    selector: .app-title
  salary:
    selector: .pay-range
  skills:
    selector: ul.skills
`))
	require.NoError(t, err)

	html := `<h1>Ignored</h1><div class="app-title">Red Team Lead</div>
		<p class="pay-range">$150k - $180k</p>
		<ul class="skills"><li>Burp</li> <li>Cobalt Strike</li></ul>`

	record := New(table).Parse(html, "u").Job
	assert.Equal(t, "Red Team Lead", record.JobRole.Value)
	assert.Equal(t, "$150k - $180k", record.Salary.Value)
	assert.Equal(t, "Burp Cobalt Strike", record.Skills.Value)
	assert.False(t, record.Company.Found)
}

func TestParse_InvalidSelectorMatchesNothing(t *testing.T) {
	table, err := selectors.Parse("custom", []byte("version: 1\nfields:\n  job_role:\n    selector: \"h1[\"\n"))
	require.NoError(t, err)

	result := New(table).Parse("<h1>Analyst</h1>", "u")
	require.False(t, result.IsError())
	assert.False(t, result.Job.JobRole.Found)
}

type fakeFetcher struct {
	html string
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, urlStr string) (*fetch.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fetch.Result{URL: urlStr, HTML: f.html, StatusCode: 200}, nil
}

func TestFetchAndParse(t *testing.T) {
	parser := New(nil)

	result := parser.FetchAndParse(context.Background(), &fakeFetcher{html: linkedInPage}, "https://example.com/1")
	require.False(t, result.IsError())
	assert.Equal(t, "Senior SOC Analyst", result.Job.JobRole.Value)

	fetchErr := &fetch.Error{URL: "https://example.com/2", Message: "HTTP request failed", Cause: errors.New("connection reset")}
	result = parser.FetchAndParse(context.Background(), &fakeFetcher{err: fetchErr}, "https://example.com/2")
	require.True(t, result.IsError())
	assert.Nil(t, result.Job)
	assert.Equal(t, "https://example.com/2", result.Err.URL)
	assert.Contains(t, result.Err.Error, "connection reset")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\t b  c "))
	assert.Equal(t, "", CleanText("   "))
}
