package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/career-agent/internal/observability"
	"github.com/jonathan/career-agent/internal/search"
	"github.com/spf13/cobra"
)

var searchJobsCmd = &cobra.Command{
	Use:   "search-jobs",
	Short: "Search job boards with a free-text query",
	Long:  "Search LinkedIn, Indeed and Glassdoor with the query exactly as typed, then fetch and summarize each posting.",
	RunE:  runSearchJobs,
}

var (
	searchQuery      string
	searchMaxResults int
	searchJSON       bool
)

func init() {
	searchJobsCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Search query (required)")
	searchJobsCmd.Flags().IntVarP(&searchMaxResults, "max-results", "n", 3, "Number of postings to return (1-10)")
	searchJobsCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")

	if err := searchJobsCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}

	rootCmd.AddCommand(searchJobsCmd)
}

func runSearchJobs(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(searchQuery) == "" {
		return fmt.Errorf("--query must not be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyMaxResults(cfg, cmd.Flags().Changed("max-results"), searchMaxResults); err != nil {
		return err
	}

	ctx := context.Background()
	recommender, err := newRecommender(ctx, cfg)
	if err != nil {
		return err
	}

	results, err := recommender.FromQuery(ctx, searchQuery, cfg.MaxResults)
	if err != nil {
		return err
	}

	if searchJSON {
		return writeJSON(os.Stdout, map[string]any{"query": search.DirectQuery(searchQuery), "results": results})
	}
	observability.NewPrinter(os.Stdout).PrintJobResults(search.DirectQuery(searchQuery), results)
	return nil
}
