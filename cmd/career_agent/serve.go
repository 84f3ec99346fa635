package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-agent/internal/optimizer"
	"github.com/jonathan/career-agent/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes job search, résumé extraction, recommendation and optimization endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := context.Background()

	recommender, err := newRecommender(ctx, cfg)
	if err != nil {
		return err
	}

	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	opt := optimizer.New(client)
	opt.Verbose = cfg.Verbose

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		Recommender: recommender,
		Optimizer:   opt,
		ModelClient: client,
		MaxResults:  cfg.MaxResults,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
