package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/julian/jobbider/internal/config"
	"github.com/julian/jobbider/internal/store"
)

var scheduleCommand = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline periodically on a cron schedule",
	Long: `Starts a long-running process that executes the full pipeline on the cron
spec from the config's schedule block. Stops cleanly on SIGINT or SIGTERM.`,
	RunE: scheduleCmd,
}

var (
	scheduleConfigPath string
	scheduleSearchOnly bool
	scheduleVerbose    bool
)

func init() {
	scheduleCommand.Flags().StringVarP(&scheduleConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	scheduleCommand.Flags().BoolVar(&scheduleSearchOnly, "search-only", false, "Discover and persist jobs without applying")
	scheduleCommand.Flags().BoolVarP(&scheduleVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scheduleCommand)
}

func scheduleCmd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(scheduleConfigPath)
	if err != nil {
		return err
	}
	if !cfg.Schedule.Enabled {
		return fmt.Errorf("schedule is not enabled in the config")
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cycle := func() {
		log.Println("[scheduler] cycle started")
		if err := executeRuns(ctx, cfg, db, "", scheduleSearchOnly, scheduleVerbose); err != nil {
			log.Printf("[scheduler] cycle error: %v", err)
		}
		log.Println("[scheduler] cycle complete")
	}

	c := cron.New(cron.WithLogger(cron.DefaultLogger))
	if _, err := c.AddFunc(cfg.Schedule.Cron, cycle); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", cfg.Schedule.Cron, err)
	}

	c.Start()
	log.Printf("[scheduler] cron started, spec: %s", cfg.Schedule.Cron)

	if cfg.Schedule.RunOnStart {
		go cycle()
	}

	<-ctx.Done()
	log.Println("[scheduler] shutting down")
	<-c.Stop().Done()
	return nil
}
