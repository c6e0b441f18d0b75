// Package main is the entry point for the marketplace server CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loftylabs/marketplace/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marketplaced",
		Short: "Auction marketplace API server",
		Long:  `marketplaced serves the multi-tenant auction marketplace API: fieldset-driven lot queries, enrichment, and tenant configuration.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
