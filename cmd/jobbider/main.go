// Package main provides the entry point for the jobbider CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobbider",
	Short: "Automated job discovery and application agent",
	Long:  "jobbider drives job platforms through a headless browser: it searches configured queries, scores listings against your criteria, and submits applications with your resume attached.",
}

func main() {
	// Load .env file if it exists; platform credentials live there.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
