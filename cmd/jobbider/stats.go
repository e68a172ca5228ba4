package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/julian/jobbider/internal/config"
	"github.com/julian/jobbider/internal/observability"
	"github.com/julian/jobbider/internal/store"
)

var statsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate discovery and application statistics",
	RunE:  statsCmd,
}

var statsConfigPath string

func init() {
	statsCommand.Flags().StringVarP(&statsConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(statsCommand)
}

func statsCmd(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(statsConfigPath)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	stats, err := db.Statistics(context.Background())
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintStatistics(stats)
	return nil
}
