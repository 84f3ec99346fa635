package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/career-agent/internal/extraction"
	"github.com/jonathan/career-agent/internal/observability"
	"github.com/jonathan/career-agent/internal/search"
	"github.com/jonathan/career-agent/internal/types"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend job postings for a résumé",
	Long:  "Extract a PDF or DOCX résumé, search job boards with its opening text, and summarize each posting found.",
	RunE:  runRecommend,
}

var (
	recommendResume     string
	recommendMaxResults int
	recommendJSON       bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendResume, "resume", "r", "", "Path to résumé (.pdf or .docx, required)")
	recommendCmd.Flags().IntVarP(&recommendMaxResults, "max-results", "n", 3, "Number of postings to return (1-10)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print results as JSON")

	if err := recommendCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyMaxResults(cfg, cmd.Flags().Changed("max-results"), recommendMaxResults); err != nil {
		return err
	}

	text, format, err := extraction.ExtractFile(recommendResume)
	if err != nil {
		return err
	}
	if format == types.FormatUnknown {
		return fmt.Errorf("unsupported résumé format for %s (expected .pdf or .docx)", recommendResume)
	}

	ctx := context.Background()
	recommender, err := newRecommender(ctx, cfg)
	if err != nil {
		return err
	}

	results, err := recommender.FromResume(ctx, text, cfg.MaxResults)
	if err != nil {
		return err
	}

	query := search.ResumeQuery(text)
	if recommendJSON {
		return writeJSON(os.Stdout, map[string]any{"query": query, "results": results})
	}
	observability.NewPrinter(os.Stdout).PrintJobResults(query, results)
	return nil
}
