package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/career-agent/internal/fetch"
)

// DefaultHTMLEndpoint is DuckDuckGo's script-free results page.
const DefaultHTMLEndpoint = "https://html.duckduckgo.com/html/"

// HTMLSearch scrapes a results page and needs no API key.
type HTMLSearch struct {
	Endpoint string
	Fetcher  fetch.Fetcher
	// ResultSelector matches result anchors; defaults to DuckDuckGo's markup
	ResultSelector string
}

// NewHTMLSearch creates an HTML searcher that fetches through fetcher.
func NewHTMLSearch(endpoint string, fetcher fetch.Fetcher) *HTMLSearch {
	if endpoint == "" {
		endpoint = DefaultHTMLEndpoint
	}
	return &HTMLSearch{
		Endpoint:       endpoint,
		Fetcher:        fetcher,
		ResultSelector: ".result:not(.result--ad) a.result__a",
	}
}

// Search fetches the results page for query and returns the first limit
// distinct result URLs in page order.
func (s *HTMLSearch) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	endpoint, err := url.Parse(s.Endpoint)
	if err != nil {
		return nil, &Error{Provider: "html", Message: "invalid endpoint", Cause: err}
	}
	params := endpoint.Query()
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	result, err := s.Fetcher.Fetch(ctx, endpoint.String())
	if err != nil {
		return nil, &Error{Provider: "html", Message: "results page unavailable", Cause: err}
	}
	if !result.OK() {
		return nil, &Error{Provider: "html", Message: fmt.Sprintf("HTTP status %d", result.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, &Error{Provider: "html", Message: "failed to parse results page", Cause: err}
	}

	links := make([]string, 0, limit)
	seen := make(map[string]bool)
	doc.Find(s.ResultSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(links) >= limit {
			return false
		}
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		link := resolveResultLink(href)
		if link == "" || seen[link] {
			return true
		}
		seen[link] = true
		links = append(links, link)
		return true
	})

	return links, nil
}

// resolveResultLink unwraps redirect links ("//duckduckgo.com/l/?uddg=...")
// and returns "" for anything that is not an absolute http(s) URL.
func resolveResultLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return resolveResultLink(target)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
