package main

import (
	"github.com/spf13/cobra"

	"github.com/entrhq/notebridge/pkg/browser"
	"github.com/entrhq/notebridge/pkg/logging"
	"github.com/entrhq/notebridge/pkg/session"
	"github.com/entrhq/notebridge/pkg/ui"
)

var authenticateCmd = &cobra.Command{
	Use:     "authenticate",
	Aliases: []string{"auth"},
	Short:   "Log in interactively and persist the session state",
	Long: "Opens a visible browser window on the application, waits for you to " +
		"complete the login manually, then captures and persists the session " +
		"state for later non-interactive runs.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, _ := logging.New("authenticate")
		defer log.Close()

		manager := browser.NewManager()
		if err := manager.Start(); err != nil {
			emit(session.AuthResult{Success: false, Error: err.Error()})
			return err
		}
		defer manager.Stop()

		store := session.NewStore(cfg.StatePath, cfg.IdentityMarker)
		acquirer := session.NewAcquirer(store, manager, cfg.AppURL)
		acquirer.Confirm = ui.ConfirmLogin

		result := acquirer.Run()
		if result.Success {
			log.Infof("authentication state saved to %s", result.StatePath)
		} else {
			log.Errorf("authentication failed: %s", result.Error)
		}
		return emit(result)
	},
}

func init() {
	rootCmd.AddCommand(authenticateCmd)
}
