// Package cli holds the key-checker commands.
package cli

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/cli/config"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/cli/flags"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
)

// Logger is the default logger
var Logger *zap.Logger

// RootCmd represents the root command of the key checker CLI
var RootCmd = &cobra.Command{
	Use:   "keychecker",
	Short: "lido-key-checker",
	Long:  `CLI utility to load node operator keys from file or network and check for duplicates and invalid signatures.`,
}

// Execute executes the root command
func Execute(appName, version string) {
	RootCmd.Short = appName
	RootCmd.Version = version

	if err := RootCmd.Execute(); err != nil {
		log.Fatal("failed to execute root command", zap.Error(err))
	}
}

// setup loads the shared configuration and installs the global logger.
// Commands call it first thing in Run.
func setup(cmd *cobra.Command) *config.Config {
	configPath, err := flags.GetConfigFlagValue(cmd)
	if err != nil {
		log.Fatal("failed to get config flag value", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("failed to load config", err)
	}

	if err := logging.SetGlobalLogger(cfg.LogLevel, cfg.LogLevelFormat, cfg.LogFilePath); err != nil {
		log.Fatal("failed to set global logger", err)
	}
	Logger = zap.L()

	return cfg
}

func init() {
	RootCmd.AddCommand(validateNetworkKeysCmd)
	RootCmd.AddCommand(validateFileKeysCmd)
	RootCmd.AddCommand(clearCacheCmd)
}
