// Package main is the notebridge CLI. Every command performs exactly one
// operation and writes exactly one JSON object to stdout; diagnostics go to
// the run log or stderr, never stdout.
package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrhq/notebridge/pkg/config"
)

var (
	configPath string
	statePath  string
	headed     bool
)

var rootCmd = &cobra.Command{
	Use:   "notebridge",
	Short: "Session-replay bridge for a browser-based notebook application",
	Long: "notebridge persists an authenticated browser session once, interactively, " +
		"then replays it non-interactively to list notebooks and upload website and " +
		"file sources. Each invocation prints a single JSON result object on stdout.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "override the session state file location")
	rootCmd.PersistentFlags().BoolVar(&headed, "headed", false, "show the browser window during automated runs")
}

// loadConfig resolves the effective configuration: defaults, then the config
// file, then command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if statePath != "" {
		cfg.StatePath = statePath
	}
	if headed {
		cfg.Browser.Headless = false
	}
	return cfg, nil
}

// emit writes the single JSON result object to stdout.
func emit(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
