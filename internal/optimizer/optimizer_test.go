package optimizer

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	prompts []string
	text    string
	err     error
}

func (c *recordingClient) Generate(_ context.Context, prompt string) (llm.Completion, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return llm.Completion{}, c.err
	}
	return llm.Completion{Text: c.text, Model: "fake"}, nil
}

func (c *recordingClient) Close() error { return nil }

const emptyPrompt = "\n    Optimize the following resume to match the job description:\n" +
	"    --- Resume ---\n    \n" +
	"    --- Job Description ---\n    \n    "

func TestOptimize_ReturnsCompletionVerbatim(t *testing.T) {
	client := &recordingClient{text: "  Jane Doe\nSOC Analyst  \n"}

	out, err := New(client).Optimize(context.Background(), types.OptimizationRequest{
		ResumeText:     "Jane Doe, analyst",
		JobDescription: "Seeking SOC analyst",
	})
	require.NoError(t, err)
	assert.Equal(t, "  Jane Doe\nSOC Analyst  \n", out)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "--- Resume ---\n    Jane Doe, analyst\n")
	assert.Contains(t, client.prompts[0], "--- Job Description ---\n    Seeking SOC analyst\n")
}

func TestOptimize_EmptyInputsStillCallModelOnce(t *testing.T) {
	client := &recordingClient{text: "something"}

	out, err := New(client).Optimize(context.Background(), types.OptimizationRequest{})
	require.NoError(t, err)
	assert.Equal(t, "something", out)

	require.Len(t, client.prompts, 1)
	assert.Equal(t, emptyPrompt, client.prompts[0])
}

func TestOptimize_PlaceholderTextInResumeIsNotExpanded(t *testing.T) {
	client := &recordingClient{}

	_, err := New(client).Optimize(context.Background(), types.OptimizationRequest{
		ResumeText:     "literal {{.JobDescription}}",
		JobDescription: "JD",
	})
	require.NoError(t, err)
	assert.Contains(t, client.prompts[0], "literal {{.JobDescription}}")
}

func TestOptimize_GenerationFailure(t *testing.T) {
	cause := &llm.APICallError{Provider: llm.ProviderLocal, Message: "HTTP 503"}
	client := &recordingClient{err: cause}

	out, err := New(client).Optimize(context.Background(), types.OptimizationRequest{ResumeText: "r", JobDescription: "j"})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Len(t, client.prompts, 1, "no retry")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.True(t, errors.Is(err, cause))

	var apiErr *llm.APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestOptimize_NoClient(t *testing.T) {
	_, err := New(nil).Optimize(context.Background(), types.OptimizationRequest{})

	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(types.OptimizationRequest{ResumeText: "R", JobDescription: "J"})
	require.NoError(t, err)
	assert.Equal(t, "\n    Optimize the following resume to match the job description:\n"+
		"    --- Resume ---\n    R\n    --- Job Description ---\n    J\n    ", prompt)
}
