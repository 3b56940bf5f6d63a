package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/competency"
	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/embedding"
	"github.com/jonathan/candidate-matcher/internal/graph"
	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/matching"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/selection"
	"github.com/jonathan/candidate-matcher/internal/types"
)

var (
	previewConfig  string
	previewProfile string
	previewJob     string
	previewOut     string
	previewOffline bool
	previewVerbose bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Score a candidate profile against a job",
	Long: `Build the candidate evidence graph, score it against the job's competencies and print the match report with selected content. One-shot run, no database or cache involved.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewConfig, "config", "", "Path to config.json file (values can be overridden by other flags)")
	previewCmd.Flags().StringVar(&previewProfile, "profile", "", "Path to candidate profile JSON")
	previewCmd.Flags().StringVar(&previewJob, "job", "", "Path to job record JSON")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "Output file for the report (default: stdout)")
	previewCmd.Flags().BoolVar(&previewOffline, "offline", false, "Use the deterministic local encoder instead of the embedding API")
	previewCmd.Flags().BoolVarP(&previewVerbose, "verbose", "v", false, "Print detailed progress information")

	// --profile/--job are not marked required; we validate after merging config

	rootCmd.AddCommand(previewCmd)
}

// previewReport is the one-shot CLI output shape
type previewReport struct {
	Report   *types.MatchReport    `json:"report"`
	Selected types.SelectedContent `json:"selected_content"`
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := mergedConfig(previewConfig, config.Config{
		Profile: previewProfile,
		Job:     previewJob,
		Verbose: previewVerbose,
		Offline: previewOffline,
	})
	if err != nil {
		return err
	}
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (via flag or config)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (via flag or config)")
	}

	profile, err := ingestion.LoadProfile(cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	job, err := ingestion.LoadJob(cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	enc, err := newEncoder(ctx, cfg)
	if err != nil {
		return err
	}

	g, err := graph.NewBuilder(enc).Build(ctx, *profile)
	if err != nil {
		return fmt.Errorf("failed to build candidate graph: %w", err)
	}

	jobCtx := competency.BuildJobContext(*job)

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		printer.PrintGraphSummary(g)
		printer.PrintJobContext(&jobCtx)
	}

	// One-shot runs have no feedback store; deltas only live in the DB.
	report, err := matching.NewMatcher(enc, nil).Match(ctx, g, jobCtx)
	if err != nil {
		return fmt.Errorf("failed to match: %w", err)
	}

	selected := selection.Select(g, report)

	if cfg.Verbose {
		printer.PrintMatchReport(report)
		printer.PrintSelectedContent(&selected)
	}

	out := previewReport{Report: report, Selected: selected}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if previewOut == "" {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(previewOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Match report written to %s\n", previewOut)
	return nil
}

// mergedConfig resolves the effective configuration: explicit flag values
// win, the optional config file fills the gaps, environment variables sit
// below both.
func mergedConfig(path string, flags config.Config) (config.Config, error) {
	cfg := flags
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
		// Bools don't merge; the config file can enable them but a flag
		// cannot disable what the file enables.
		cfg.Verbose = cfg.Verbose || fileCfg.Verbose
		cfg.Offline = cfg.Offline || fileCfg.Offline
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newEncoder picks the embedding backend for one-shot commands. Online
// runs share the process-wide encoder.
func newEncoder(ctx context.Context, cfg config.Config) (embedding.Encoder, error) {
	if cfg.Offline {
		return embedding.StaticEncoder{}, nil
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or config 'api_key' is required (or pass --offline)")
	}
	enc, err := embedding.Default(ctx, embedding.Config{APIKey: cfg.APIKey, Model: cfg.EmbeddingModel})
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	return enc, nil
}
