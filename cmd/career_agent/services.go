package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jonathan/career-agent/internal/config"
	"github.com/jonathan/career-agent/internal/fetch"
	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/parsing"
	"github.com/jonathan/career-agent/internal/recommend"
	"github.com/jonathan/career-agent/internal/search"
	"github.com/jonathan/career-agent/internal/selectors"
)

// loadConfig resolves --config, the environment and defaults, then applies
// the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// applyMaxResults overrides cfg.MaxResults when the flag was set and
// validates it against the 1..10 range.
func applyMaxResults(cfg *config.Config, changed bool, value int) error {
	if !changed {
		return nil
	}
	if value < 1 || value > 10 {
		return fmt.Errorf("--max-results must be between 1 and 10, got %d", value)
	}
	cfg.MaxResults = value
	return nil
}

// newFetcher builds the page fetcher: plain HTTP limited per host, with a
// headless browser retry for thin pages when use_browser is set.
func newFetcher(cfg *config.Config) fetch.Fetcher {
	httpFetcher := fetch.NewHTTPFetcher(&fetch.Options{
		Timeout: cfg.FetchTimeout(),
		Limiter: fetch.NewHostLimiter(cfg.RequestsPerSecond, 1),
		Verbose: cfg.Verbose,
	})
	if !cfg.UseBrowser {
		return httpFetcher
	}
	return &fetch.FallbackFetcher{
		Primary:  httpFetcher,
		Fallback: fetch.NewBrowserFetcher(cfg.FetchTimeout(), cfg.Verbose),
		Verbose:  cfg.Verbose,
	}
}

// newSearcher uses Programmable Search when both credentials are present
// and the HTML results page otherwise.
func newSearcher(ctx context.Context, cfg *config.Config, fetcher fetch.Fetcher) (search.Searcher, error) {
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		return search.NewCustomSearch(ctx, search.CustomSearchConfig{
			APIKey:   cfg.SearchAPIKey,
			EngineID: cfg.SearchEngineID,
			Verbose:  cfg.Verbose,
		})
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] %s/%s not set, searching via HTML results page", config.EnvSearchAPIKey, config.EnvSearchCX)
	}
	return search.NewHTMLSearch(cfg.SearchEndpoint, fetcher), nil
}

// newRecommender wires search, fetch, and parse into an Orchestrator.
func newRecommender(ctx context.Context, cfg *config.Config) (*recommend.Orchestrator, error) {
	table, err := selectors.LoadOrDefault(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}

	fetcher := newFetcher(cfg)
	searcher, err := newSearcher(ctx, cfg, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	opts := recommend.Options{
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
	}
	if cfg.Verbose {
		opts.OnProgress = func(p recommend.Progress) {
			status := "ok"
			if p.Result.IsError() {
				status = p.Result.Err.Error
			}
			log.Printf("[VERBOSE] posting %d/%d: %s", p.Index+1, p.Total, status)
		}
	}

	return recommend.New(searcher, fetcher, parsing.New(table), opts), nil
}

// newModelClient creates the language model client for cfg.Provider.
func newModelClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	provider, err := llm.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	llmConfig := llm.DefaultConfig()
	if provider == llm.ProviderLocal {
		llmConfig = llm.DefaultLocalConfig()
	}
	// Defaults() names a Gemini model, which a local server would not recognize
	if cfg.Model != "" && !(provider == llm.ProviderLocal && cfg.Model == config.Defaults().Model) {
		llmConfig.Model = cfg.Model
	}
	if cfg.LLMBaseURL != "" {
		llmConfig.BaseURL = cfg.LLMBaseURL
	}

	if provider == llm.ProviderGemini && cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set %s or api_key in the config file)", config.EnvGeminiAPIKey)
	}

	return llm.NewClient(ctx, llmConfig, cfg.APIKey)
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
