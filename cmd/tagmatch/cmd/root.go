// Package cmd implements the tagmatch CLI commands.
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/labelforge/tagmatch/internal/config"
	"github.com/labelforge/tagmatch/pkg/logging"
)

// NewRootCommand creates the tagmatch root command.
func NewRootCommand(version, commit, date string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tagmatch",
		Short: "Match inventory manifests against a product catalog",
		Long: `tagmatch reconciles line items from an inventory transfer manifest
against a locally loaded product catalog, producing a best-effort mapping
from each manifest item to a catalog record or a synthesized fallback.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present; absence is not an error.
			_ = godotenv.Load()
			cfg := logging.DefaultConfig()
			cfg.Level = config.GetString("log_level", "info")
			logging.Configure(cfg)
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newMatchCommand())
	root.AddCommand(newCatalogCommand())

	return root
}
