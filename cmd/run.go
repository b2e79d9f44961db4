package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/app"
	"github.com/abhisek/karmaloop/internal/screen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, runtimeOpts{tui: true, llm: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(cmd.Context(), app.Options{
		Engine: rt.engine,
		Log:    rt.log,
		Deps: screen.Deps{
			ScanPacing:    rt.cfg.ScanPacing,
			OracleTimeout: rt.cfg.OracleTimeout,
		},
	})
}
