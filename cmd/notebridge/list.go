package main

import (
	"github.com/spf13/cobra"

	"github.com/entrhq/notebridge/pkg/browser"
	"github.com/entrhq/notebridge/pkg/logging"
	"github.com/entrhq/notebridge/pkg/notebook"
	"github.com/entrhq/notebridge/pkg/session"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebook titles using the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, _ := logging.New("list")
		defer log.Close()

		manager := browser.NewManager()
		if err := manager.Start(); err != nil {
			emit(notebook.ListResult{Success: false, Notebooks: []string{}, Error: err.Error()})
			return err
		}
		defer manager.Stop()

		store := session.NewStore(cfg.StatePath, cfg.IdentityMarker)
		client := notebook.NewClient(cfg, store, manager, log)
		return emit(client.List())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
