package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/ingestion"
)

var (
	exportConfig  string
	exportProfile string
	exportOut     string
	exportOffline bool
)

var exportGraphCmd = &cobra.Command{
	Use:   "export-graph",
	Short: "Build and export a candidate's evidence graph",
	Long:  `Build the candidate evidence graph from a profile JSON file and write its exported representation, embeddings included, as JSON.`,
	RunE:  runExportGraph,
}

func init() {
	exportGraphCmd.Flags().StringVar(&exportConfig, "config", "", "Path to config.json file (values can be overridden by other flags)")
	exportGraphCmd.Flags().StringVar(&exportProfile, "profile", "", "Path to candidate profile JSON")
	exportGraphCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file for the graph (default: stdout)")
	exportGraphCmd.Flags().BoolVar(&exportOffline, "offline", false, "Use the deterministic local encoder instead of the embedding API")

	rootCmd.AddCommand(exportGraphCmd)
}

func runExportGraph(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := mergedConfig(exportConfig, config.Config{
		Profile: exportProfile,
		Offline: exportOffline,
	})
	if err != nil {
		return err
	}
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (via flag or config)")
	}

	profile, err := ingestion.LoadProfile(cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	enc, err := newEncoder(ctx, cfg)
	if err != nil {
		return err
	}

	g, err := graph.NewBuilder(enc).Build(ctx, *profile)
	if err != nil {
		return fmt.Errorf("failed to build candidate graph: %w", err)
	}

	data, err := json.MarshalIndent(graph.Export(g), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	if exportOut == "" {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Graph written to %s\n", exportOut)
	return nil
}
