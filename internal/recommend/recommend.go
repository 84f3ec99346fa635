// Package recommend turns a query or résumé into a list of parsed job postings.
package recommend

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/career-agent/internal/fetch"
	"github.com/jonathan/career-agent/internal/parsing"
	"github.com/jonathan/career-agent/internal/search"
	"github.com/jonathan/career-agent/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxResults is the number of postings returned when none is requested
const DefaultMaxResults = 3

// DefaultConcurrency bounds how many postings are fetched at once
const DefaultConcurrency = 3

// Progress reports one finished posting. Index is its position in the
// search results.
type Progress struct {
	Index  int
	Total  int
	Result types.JobResult
}

// Options configures an Orchestrator
type Options struct {
	// Concurrency is the number of postings fetched in parallel; 1 is sequential
	Concurrency int
	// OnProgress, when set, is called as each posting finishes. Calls may
	// arrive out of order and from multiple goroutines.
	OnProgress func(Progress)
	Verbose    bool
}

// Orchestrator runs search, fetch, and parse for one recommendation request
type Orchestrator struct {
	searcher search.Searcher
	fetcher  fetch.Fetcher
	parser   *parsing.Parser
	opts     Options
}

// New creates an Orchestrator. A nil parser uses the default selector table.
func New(searcher search.Searcher, fetcher fetch.Fetcher, parser *parsing.Parser, opts Options) *Orchestrator {
	if parser == nil {
		parser = parsing.New(nil)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		searcher: searcher,
		fetcher:  fetcher,
		parser:   parser,
		opts:     opts,
	}
}

// FromResume recommends postings for résumé text using the truncated,
// site-restricted résumé query.
func (o *Orchestrator) FromResume(ctx context.Context, resumeText string, maxResults int) ([]types.JobResult, error) {
	return o.Recommend(ctx, search.ResumeQuery(resumeText), maxResults)
}

// FromQuery recommends postings for a query typed by the user, used as is.
func (o *Orchestrator) FromQuery(ctx context.Context, query string, maxResults int) ([]types.JobResult, error) {
	return o.Recommend(ctx, search.DirectQuery(query), maxResults)
}

// Recommend searches for query and fetches and parses each result URL.
// The returned slice has one entry per URL in search order; a posting that
// cannot be fetched or parsed becomes an ErrorRecord in its slot. Only a
// search failure is returned as an error.
func (o *Orchestrator) Recommend(ctx context.Context, query string, maxResults int) ([]types.JobResult, error) {
	return o.run(ctx, query, maxResults, o.opts.OnProgress)
}

// Stream is Recommend with a per-call progress callback, used to push
// postings to a client as they finish.
func (o *Orchestrator) Stream(ctx context.Context, query string, maxResults int, onProgress func(Progress)) ([]types.JobResult, error) {
	return o.run(ctx, query, maxResults, onProgress)
}

func (o *Orchestrator) run(ctx context.Context, query string, maxResults int, onProgress func(Progress)) ([]types.JobResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	urls, err := o.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("job search failed: %w", err)
	}
	if len(urls) > maxResults {
		urls = urls[:maxResults]
	}
	if o.opts.Verbose {
		log.Printf("[recommend] %d result URLs for query %q", len(urls), query)
	}

	results := make([]types.JobResult, len(urls))
	if len(urls) == 0 {
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(o.opts.Concurrency)

	for i, u := range urls {
		g.Go(func() error {
			result := o.parser.FetchAndParse(ctx, o.fetcher, u)
			if o.opts.Verbose && result.IsError() {
				log.Printf("[recommend] %s: %s", u, result.Err.Error)
			}
			results[i] = result
			if onProgress != nil {
				onProgress(Progress{Index: i, Total: len(urls), Result: result})
			}
			return nil
		})
	}

	// failures are folded into results
	_ = g.Wait()

	return results, nil
}
