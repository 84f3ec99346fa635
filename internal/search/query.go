// Package search builds job search queries and resolves them to result URLs.
package search

import "fmt"

// ResumeExcerptLength is the number of résumé characters embedded in a
// résumé-based query.
const ResumeExcerptLength = 500

// SiteFilter restricts résumé-based queries to the supported job boards.
const SiteFilter = "site:linkedin.com OR site:indeed.com OR site:glassdoor.com"

// ResumePrefix starts every résumé-based query.
const ResumePrefix = "Cyber Security job matching"

// ResumeQuery builds the query used to recommend jobs from résumé text: the
// first ResumeExcerptLength characters between the prefix and the site filter.
func ResumeQuery(resumeText string) string {
	return fmt.Sprintf("%s %s %s", ResumePrefix, Excerpt(resumeText, ResumeExcerptLength), SiteFilter)
}

// DirectQuery returns a search-box query unchanged. Unlike ResumeQuery it is
// neither truncated nor restricted to job boards.
func DirectQuery(query string) string {
	return query
}

// Excerpt returns the first n characters (runes) of s.
func Excerpt(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
