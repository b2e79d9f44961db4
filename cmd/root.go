package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "karmaloop",
	Short: "Career intelligence terminal",
	Long: "KarmaLoop runs a 20-question neural scan, decodes it into a SWOT profile " +
		"and tracks progression through XP, levels and badges.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KARMALOOP_DB env var)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(oracleCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KARMALOOP_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
