// Package cli implements the glucolog CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glucolog/internal/config"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "glucolog",
	Short:         "Blood glucose log",
	Long:          "Record blood glucose readings, flag out-of-range values and compare weekly averages.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", env("GLUCOLOG_CONFIG", "glucolog.toml"), "Config file (TOML); missing file means defaults")
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
