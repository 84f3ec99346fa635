// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, CLI flags, or Defaults.
type Config struct {
	// Model host
	Provider   string `json:"provider,omitempty"`     // "gemini" or "local"
	Model      string `json:"model,omitempty"`        // Model name
	LLMBaseURL string `json:"llm_base_url,omitempty"` // llama.cpp server URL (local provider)
	APIKey     string `json:"api_key,omitempty"`      // Gemini API key

	// Search provider
	SearchAPIKey   string `json:"search_api_key,omitempty"`   // Google Programmable Search API key
	SearchEngineID string `json:"search_engine_id,omitempty"` // Programmable Search engine ID (cx)
	SearchEndpoint string `json:"search_endpoint,omitempty"`  // HTML results page used without an API key

	// Parsing
	SelectorsFile string `json:"selectors_file,omitempty"` // YAML selector table overriding the built-in one

	// Limits
	MaxResults          int     `json:"max_results,omitempty"`           // Postings per recommendation
	Concurrency         int     `json:"concurrency,omitempty"`           // Postings fetched in parallel
	FetchTimeoutSeconds int     `json:"fetch_timeout_seconds,omitempty"` // Per-request fetch timeout
	RequestsPerSecond   float64 `json:"requests_per_second,omitempty"`   // Per-host fetch rate

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Retry thin pages with a headless browser
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
	Port       int  `json:"port,omitempty"`        // HTTP server port
}

// Defaults returns the built-in configuration values
func Defaults() Config {
	return Config{
		Provider:            "gemini",
		Model:               "gemini-2.5-flash",
		MaxResults:          3,
		Concurrency:         3,
		FetchTimeoutSeconds: 30,
		RequestsPerSecond:   1,
		Port:                8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required credentials are checked when the client that needs them is built.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", "gemini", "local":
	default:
		return fmt.Errorf("config error: 'provider' must be \"gemini\" or \"local\", got %q", c.Provider)
	}

	if c.MaxResults < 0 || c.MaxResults > 10 {
		return fmt.Errorf("config error: 'max_results' must be between 1 and 10")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config error: 'requests_per_second' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.SelectorsFile != "" {
		if _, err := os.Stat(c.SelectorsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: selectors file not found: %s", c.SelectorsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LLMBaseURL == "" {
		result.LLMBaseURL = defaults.LLMBaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.SearchEndpoint == "" {
		result.SearchEndpoint = defaults.SearchEndpoint
	}
	if result.SelectorsFile == "" {
		result.SelectorsFile = defaults.SelectorsFile
	}

	// Numeric fields: use default if zero
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FetchTimeout returns the fetch timeout as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
