package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultLocalTimeout bounds a single completion on a local server
const DefaultLocalTimeout = 5 * time.Minute

// LocalClient implements Client for a llama.cpp server's /completion endpoint
type LocalClient struct {
	httpClient *http.Client
	config     *Config
}

type localRequest struct {
	Prompt      string  `json:"prompt"`
	NPredict    int     `json:"n_predict"`
	Temperature float32 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

type localResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
}

// NewLocalClient creates a client for the server at config.BaseURL.
// A nil httpClient uses one with DefaultLocalTimeout.
func NewLocalClient(config *Config, httpClient *http.Client) *LocalClient {
	if config == nil {
		config = DefaultLocalConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultLocalTimeout}
	}
	return &LocalClient{httpClient: httpClient, config: config.withDefaults()}
}

// Generate posts prompt to /completion and returns the generated content
func (c *LocalClient) Generate(ctx context.Context, prompt string) (Completion, error) {
	body, err := json.Marshal(localRequest{
		Prompt:      prompt,
		NPredict:    c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return Completion{}, &APICallError{Provider: ProviderLocal, Message: "failed to encode request", Cause: err}
	}

	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + "/completion"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Completion{}, &APICallError{Provider: ProviderLocal, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Completion{}, &APICallError{Provider: ProviderLocal, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, &APICallError{Provider: ProviderLocal, Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Completion{}, &APICallError{
			Provider: ProviderLocal,
			Message:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data))),
		}
	}

	var out localResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return Completion{}, &APICallError{Provider: ProviderLocal, Message: "invalid response body", Cause: err}
	}

	model := out.Model
	if model == "" {
		model = c.config.Model
	}
	return Completion{Text: out.Content, Model: model}, nil
}

// Close is a no-op; the HTTP client holds no per-client resources
func (c *LocalClient) Close() error {
	return nil
}
