// Package cli exposes the configuration engine as a command line tool for
// inspecting defaults, validating documents, and editing the persisted
// configuration.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/searchpro/settings/pkg/config"
	"github.com/searchpro/settings/pkg/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "searchpro-settings",
		Short: "Search widget configuration engine",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logLevel, logJSON, err := resolveLogSettings(cmd, cfg)
			if err != nil {
				return err
			}
			logger.SetupLogger(logLevel, logJSON)
			return nil
		},
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	root.AddCommand(
		DefaultsCmd(),
		ValidateCmd(),
		ImportCmd(),
		ResetCmd(),
		GetCmd(),
		SetCmd(),
	)
	return root
}

// resolveLogSettings combines the loaded configuration with the CLI flags.
// An explicitly set flag wins; otherwise the configuration (and with it the
// SEARCHPRO_LOG_* environment variables) decides.
func resolveLogSettings(cmd *cobra.Command, cfg *config.Config) (string, bool, error) {
	logLevel, logJSON, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return "", false, err
	}
	if !cmd.Flags().Changed("log-level") {
		logLevel = cfg.Log.Level
	}
	if !cmd.Flags().Changed("log-json") {
		logJSON = cfg.Log.JSON
	}
	return logLevel, logJSON, nil
}
