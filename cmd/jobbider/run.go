package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/julian/jobbider/internal/adapter"
	"github.com/julian/jobbider/internal/adapter/dice"
	"github.com/julian/jobbider/internal/browser"
	"github.com/julian/jobbider/internal/config"
	"github.com/julian/jobbider/internal/matching"
	"github.com/julian/jobbider/internal/observability"
	"github.com/julian/jobbider/internal/store"
	"github.com/julian/jobbider/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run discovery and application against the enabled platforms",
	Long: `Runs the full pipeline for every enabled platform: login, paginated search,
match scoring, and application submission. Use --search-only to discover and
persist jobs without applying.`,
	RunE: runCmd,
}

var (
	runConfigPath string
	runPlatform   string
	runSearchOnly bool
	runVerbose    bool
)

func init() {
	runCommand.Flags().StringVarP(&runConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	runCommand.Flags().StringVarP(&runPlatform, "platform", "p", "", "Run a single platform instead of all enabled ones")
	runCommand.Flags().BoolVar(&runSearchOnly, "search-only", false, "Discover and persist jobs without applying")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(runCommand)
}

func runCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return executeRuns(ctx, cfg, db, runPlatform, runSearchOnly, runVerbose)
}

// executeRuns drives every selected platform sequentially. Per-platform
// failures are reported and do not stop the remaining platforms; only setup
// problems abort the whole invocation.
func executeRuns(ctx context.Context, cfg *config.Config, db *store.DB, only string, searchOnly, verbose bool) error {
	adapters, err := buildAdapters(cfg, db, only, verbose)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	criteria := cfg.Criteria()
	failures := 0
	for _, a := range adapters {
		result, err := a.Run(ctx, searchOnly)
		if err != nil {
			log.Printf("[run] platform %s failed: %v", a.Platform(), err)
			failures++
			continue
		}
		printer.PrintRunSummary(a.Platform(), result, searchOnly)
		if searchOnly {
			printMatches(printer, result.Discovered, &criteria)
		}
	}

	stats, err := db.Statistics(ctx)
	if err != nil {
		return err
	}
	printer.PrintStatistics(stats)

	if failures == len(adapters) && failures > 0 {
		return fmt.Errorf("all %d platform runs failed", failures)
	}
	return nil
}

// printMatches shows which of the discovered jobs pass the score threshold,
// best first.
func printMatches(printer *observability.Printer, discovered []types.JobRecord, criteria *types.SearchCriteria) {
	scored := matching.Filter(discovered, criteria)
	jobs := make([]types.JobRecord, len(scored))
	scores := make([]float64, len(scored))
	for i, s := range scored {
		jobs[i] = s.Job
		scores[i] = s.Score
	}
	printer.PrintScoredJobs(jobs, scores)
}

// buildAdapters instantiates one adapter per selected platform, in name order
// so repeated invocations behave the same. A platform that cannot be set up
// (missing credentials, no adapter for it) is skipped so the others still run.
func buildAdapters(cfg *config.Config, db *store.DB, only string, verbose bool) ([]adapter.Adapter, error) {
	platforms := cfg.EnabledPlatforms()
	sort.Strings(platforms)
	if only != "" {
		p, ok := cfg.Platforms[only]
		if !ok || !p.Enabled {
			return nil, fmt.Errorf("platform %q is not enabled in the config", only)
		}
		platforms = []string{only}
	}

	var adapters []adapter.Adapter
	for _, name := range platforms {
		creds, err := config.CredentialsFromEnv(name)
		if err != nil {
			log.Printf("[run] skipping platform %s: %v", name, err)
			continue
		}
		platform := cfg.Platforms[name]

		switch name {
		case "dice":
			adapters = append(adapters, dice.New(browserFactory(cfg, verbose), db, dice.Config{
				SearchQuery:               platform.SearchQuery,
				MaxPages:                  platform.MaxPages,
				AssumeAppliedWhenNoUpload: platform.AssumeAppliedWhenNoUpload,
				ResumePath:                cfg.Resume.File,
				Credentials:               creds,
				Criteria:                  cfg.Criteria(),
				Verbose:                   verbose,
			}))
		default:
			log.Printf("[run] skipping platform %s: no adapter implemented", name)
		}
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no runnable platforms (check enabled flags and credentials)")
	}
	return adapters, nil
}

// browserFactory builds the per-run browser opener from the config. The
// adapter's run id names the screenshots so they correlate with its log lines.
func browserFactory(cfg *config.Config, verbose bool) adapter.OpenBrowser {
	return func(ctx context.Context, runID string) (adapter.Browser, error) {
		return browser.Open(ctx, browser.Config{
			Headless:        cfg.Browser.Headless,
			UserAgent:       cfg.Browser.UserAgent,
			PageLoadTimeout: time.Duration(cfg.Browser.PageLoadTimeoutSec) * time.Second,
			ElementWait:     time.Duration(cfg.Browser.ElementWaitSec) * time.Second,
			NavsPerSecond:   cfg.Browser.NavsPerSecond,
			ScreenshotDir:   cfg.ScreenshotDir,
			RunID:           runID,
			Verbose:         verbose,
		})
	}
}
