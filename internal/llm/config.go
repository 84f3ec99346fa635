// Package llm provides the text generation client used by the résumé optimizer.
// A Client is created once by the hosting command or server and injected where needed.
package llm

import "fmt"

// Provider represents an LLM provider
type Provider string

const (
	// ProviderGemini is the Google Gemini API
	ProviderGemini Provider = "gemini"
	// ProviderLocal is a llama.cpp server reachable over HTTP
	ProviderLocal Provider = "local"
)

// Default settings
const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultLocalBaseURL = "http://127.0.0.1:8080"
	DefaultMaxTokens    = 1024
	DefaultTemperature  = 0.2
)

// Config holds the generation settings for a Client
type Config struct {
	Provider    Provider
	Model       string
	BaseURL     string // local provider only
	MaxTokens   int
	Temperature float32
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultGeminiModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// DefaultLocalConfig returns the default configuration for a llama.cpp server
func DefaultLocalConfig() *Config {
	return &Config{
		Provider:    ProviderLocal,
		BaseURL:     DefaultLocalBaseURL,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// ParseProvider converts a config or environment value to a Provider.
// The empty string selects Gemini.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderLocal:
		return ProviderLocal, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q (expected %q or %q)", s, ProviderGemini, ProviderLocal)
	}
}

// withDefaults fills zero values from the provider's defaults
func (c *Config) withDefaults() *Config {
	out := *c
	if out.Provider == "" {
		out.Provider = ProviderGemini
	}
	if out.Provider == ProviderGemini && out.Model == "" {
		out.Model = DefaultGeminiModel
	}
	if out.Provider == ProviderLocal && out.BaseURL == "" {
		out.BaseURL = DefaultLocalBaseURL
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	return &out
}
