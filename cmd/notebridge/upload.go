package main

import (
	"github.com/spf13/cobra"

	"github.com/entrhq/notebridge/pkg/browser"
	"github.com/entrhq/notebridge/pkg/logging"
	"github.com/entrhq/notebridge/pkg/notebook"
	"github.com/entrhq/notebridge/pkg/session"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <notebook> <sources>",
	Short: "Upload sources to a notebook using the persisted session",
	Long: "Resolves the named notebook (creating it when absent) and attaches each " +
		"requested source. <sources> is either a JSON array of " +
		`{"type":"website"|"file","value":...} objects or a path to a file ` +
		"containing one. Sources are independent; a failing source is recorded " +
		"and the rest still upload.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Parse before any browser capability is touched: a malformed sources
		// argument must never launch a browser.
		requests, err := notebook.ParseSources(args[1])
		if err != nil {
			emit(notebook.UploadResult{
				Success:  false,
				Notebook: args[0],
				Uploaded: []string{},
				Failed:   []notebook.SourceFailure{},
				Error:    err.Error(),
			})
			return err
		}

		log, _ := logging.New("upload")
		defer log.Close()

		manager := browser.NewManager()
		if err := manager.Start(); err != nil {
			emit(notebook.UploadResult{
				Success:  false,
				Notebook: args[0],
				Uploaded: []string{},
				Failed:   []notebook.SourceFailure{},
				Error:    err.Error(),
			})
			return err
		}
		defer manager.Stop()

		store := session.NewStore(cfg.StatePath, cfg.IdentityMarker)
		client := notebook.NewClient(cfg, store, manager, log)
		return emit(client.Upload(args[0], requests))
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
