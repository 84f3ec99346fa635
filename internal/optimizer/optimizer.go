// Package optimizer rewrites résumé text toward a job description with a language model.
package optimizer

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/prompts"
	"github.com/jonathan/career-agent/internal/types"
)

const (
	promptFile = "optimize.json"
	promptKey  = "optimize-resume"
)

// GenerationError represents a failed optimization call to the model
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Optimizer produces optimized résumé text through an injected model client
type Optimizer struct {
	client  llm.Client
	Verbose bool
}

// New creates an Optimizer. The caller owns client and closes it.
func New(client llm.Client) *Optimizer {
	return &Optimizer{client: client}
}

// BuildPrompt renders the optimization prompt for req
func BuildPrompt(req types.OptimizationRequest) (string, error) {
	return prompts.Render(promptFile, promptKey, map[string]string{
		"Resume":         req.ResumeText,
		"JobDescription": req.JobDescription,
	})
}

// Optimize issues exactly one generation call and returns the completion text
// unmodified. Empty inputs are sent as is.
func (o *Optimizer) Optimize(ctx context.Context, req types.OptimizationRequest) (string, error) {
	if o.client == nil {
		return "", &GenerationError{Message: "no model client configured"}
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", fmt.Errorf("failed to build optimization prompt: %w", err)
	}

	if o.Verbose {
		log.Printf("[VERBOSE] Optimizing resume (%d chars) against job description (%d chars)",
			len(req.ResumeText), len(req.JobDescription))
	}

	completion, err := o.client.Generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Message: "failed to generate optimized resume", Cause: err}
	}

	if o.Verbose {
		log.Printf("[VERBOSE] Model %s returned %d chars", completion.Model, len(completion.Text))
	}
	return completion.Text, nil
}
