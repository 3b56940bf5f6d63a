package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/server"
)

var (
	serveConfig  string
	servePort    int
	serveOffline bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing match preview, feedback and graph export endpoints.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "Use the deterministic local encoder instead of the embedding API")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := config.Config{Offline: serveOffline}
	// The port flag carries a default, so only an explicit flag should
	// override the config file.
	if cmd.Flags().Changed("port") {
		flags.Port = servePort
	}

	cfg, err := mergedConfig(serveConfig, flags)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or config 'database_url' is required")
	}
	if !cfg.Offline && cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or config 'api_key' is required (or pass --offline)")
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:           cfg.Port,
		DatabaseURL:    cfg.DatabaseURL,
		APIKey:         cfg.APIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		Offline:        cfg.Offline,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if cfg.Offline {
		fmt.Fprintln(os.Stderr, "Warning: running with the offline encoder; similarities are not semantic")
	}

	return srv.Start()
}
