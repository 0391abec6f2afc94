package main

import (
	"github.com/spf13/cobra"

	"github.com/entrhq/notebridge/pkg/session"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether a usable authentication state exists",
	Long: "Inspects the persisted session state without launching a browser and " +
		"reports whether it holds identity cookies for the target application.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := session.NewStore(cfg.StatePath, cfg.IdentityMarker)
		return emit(store.Check())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
