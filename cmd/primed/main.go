// Package main is the entry point for the primed CLI.
package main

import (
	"fmt"
	"os"

	"github.com/primelabs/primed/internal/config"
	"github.com/spf13/cobra"
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
		Use:   "primed",
		Short: "Prime number enumeration server",
		Long:  `Primed enumerates prime numbers with a segmented Sieve of Atkin and serves them over an HTTP API with persistent segment caching.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(rangeCmd())
	cmd.AddCommand(uptoCmd())
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
