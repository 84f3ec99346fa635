package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/career-agent/internal/extraction"
	"github.com/jonathan/career-agent/internal/fetch"
	"github.com/jonathan/career-agent/internal/optimizer"
	"github.com/jonathan/career-agent/internal/types"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rewrite a résumé toward a job description",
	Long: "Send the résumé and job description to the configured language model and print the rewritten résumé. " +
		"The job description comes from a file, stdin (--job-desc -), or a job posting URL.",
	RunE: runOptimize,
}

var (
	optimizeResume  string
	optimizeJobDesc string
	optimizeJobURL  string
	optimizeOut     string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeResume, "resume", "r", "", "Path to résumé: .pdf, .docx, or plain text (required)")
	optimizeCmd.Flags().StringVarP(&optimizeJobDesc, "job-desc", "j", "", "Path to job description text, or - for stdin")
	optimizeCmd.Flags().StringVar(&optimizeJobURL, "job-url", "", "Job posting URL to fetch the description from")
	optimizeCmd.Flags().StringVarP(&optimizeOut, "out", "o", "", "Write the optimized résumé to this file")

	if err := optimizeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	optimizeCmd.MarkFlagsMutuallyExclusive("job-desc", "job-url")
	optimizeCmd.MarkFlagsOneRequired("job-desc", "job-url")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resumeText, err := readResume(optimizeResume)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var jobDescription string
	if optimizeJobURL != "" {
		jobDescription, err = fetchJobDescription(ctx, newFetcher(cfg), optimizeJobURL)
	} else {
		jobDescription, err = readInput(optimizeJobDesc, cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	opt := optimizer.New(client)
	opt.Verbose = cfg.Verbose

	optimized, err := opt.Optimize(ctx, types.OptimizationRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		return err
	}

	if optimizeOut != "" {
		if err := os.WriteFile(optimizeOut, []byte(optimized), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Optimized résumé written to %s\n", optimizeOut)
		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, optimized)
	return nil
}

// readResume extracts PDF and DOCX résumés and reads anything else as plain text.
func readResume(path string) (string, error) {
	text, format, err := extraction.ExtractFile(path)
	if err != nil {
		return "", err
	}
	if format != types.FormatUnknown {
		return text, nil
	}
	return readInput(path, nil)
}

// fetchJobDescription fetches a posting and keeps only its description text.
func fetchJobDescription(ctx context.Context, fetcher fetch.Fetcher, jobURL string) (string, error) {
	result, err := fetcher.Fetch(ctx, jobURL)
	if err != nil {
		return "", err
	}
	if !result.OK() {
		return "", fmt.Errorf("failed to fetch job posting %s: HTTP %d", jobURL, result.StatusCode)
	}

	text, err := fetch.JobDescriptionText(result)
	if err != nil {
		return "", fmt.Errorf("failed to extract job description: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("no job description found at %s", jobURL)
	}
	return text, nil
}
