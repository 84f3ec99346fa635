package config

import "os"

// Environment variables read by FromEnv
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvSearchAPIKey = "GOOGLE_SEARCH_API_KEY"
	EnvSearchCX     = "GOOGLE_SEARCH_CX"
	EnvLLMBaseURL   = "LLM_BASE_URL"
	EnvLLMProvider  = "LLM_PROVIDER"
	EnvLLMModel     = "LLM_MODEL"
)

// FromEnv returns a Config holding only the values set in the environment.
// It is meant to be merged under file and flag values with MergeWithDefaults.
func FromEnv() Config {
	return Config{
		Provider:       os.Getenv(EnvLLMProvider),
		Model:          os.Getenv(EnvLLMModel),
		LLMBaseURL:     os.Getenv(EnvLLMBaseURL),
		APIKey:         os.Getenv(EnvGeminiAPIKey),
		SearchAPIKey:   os.Getenv(EnvSearchAPIKey),
		SearchEngineID: os.Getenv(EnvSearchCX),
	}
}

// Resolve layers a config file (optional), the environment, and Defaults,
// in that order of precedence, and validates the result.
func Resolve(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	env := FromEnv()
	merged := cfg.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
