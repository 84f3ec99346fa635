package search

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// maxPageSize is the most results the Custom Search API returns per call.
const maxPageSize = 10

// Searcher returns up to limit result URLs for a query, in provider order.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// Error represents a failed call to a search provider.
type Error struct {
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s search failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s search failed: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CustomSearch queries Google Programmable Search.
type CustomSearch struct {
	svc     *customsearch.Service
	cx      string
	verbose bool
}

// CustomSearchConfig holds the credentials for CustomSearch.
type CustomSearchConfig struct {
	APIKey   string
	EngineID string
	Endpoint string // overrides the API base URL, used in tests
	Verbose  bool
}

// NewCustomSearch creates a Custom Search client.
func NewCustomSearch(ctx context.Context, cfg CustomSearchConfig) (*CustomSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	if cfg.EngineID == "" {
		return nil, fmt.Errorf("search engine ID is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &CustomSearch{svc: svc, cx: cfg.EngineID, verbose: cfg.Verbose}, nil
}

// Search pages through results until limit links are collected or the
// provider runs out.
func (s *CustomSearch) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	links := make([]string, 0, limit)

	for start := 1; len(links) < limit; {
		num := min(maxPageSize, limit-len(links))
		resp, err := s.svc.Cse.List().Cx(s.cx).Q(query).Num(int64(num)).Start(int64(start)).Context(ctx).Do()
		if err != nil {
			return nil, &Error{Provider: "google", Message: "list request failed", Cause: err}
		}

		for _, item := range resp.Items {
			if item.Link != "" && len(links) < limit {
				links = append(links, item.Link)
			}
		}
		if s.verbose {
			log.Printf("[search] google start=%d returned %d items", start, len(resp.Items))
		}

		if len(resp.Items) < num {
			break
		}
		start += num
	}

	return links, nil
}
