package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/cli/flags"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry/keycache"
)

// clearCacheCmd wipes the per-network validation cache, which is required
// after the protocol rotates its withdrawal credentials.
var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "clears the validation cache for a network",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup(cmd)
		defer logging.CapturePanic(Logger)

		network := networkFromFlags(cmd)

		dbOptions := cfg.DB
		dbOptions.Ctx = cmd.Context()
		cache, err := keycache.Open(Logger, cfg.DataDir, network.ChainID, dbOptions)
		if err != nil {
			Logger.Fatal("failed to open key cache", zap.Error(err))
		}
		defer func() {
			if err := cache.Close(); err != nil {
				Logger.Error("failed to close key cache", zap.Error(err))
			}
		}()

		if err := cache.Clear(); err != nil {
			Logger.Fatal("failed to clear key cache", zap.Error(err))
		}
		Logger.Info("cleared validation cache", zap.String("network", network.String()))
	},
}

func init() {
	flags.AddConfigFlag(clearCacheCmd)
	flags.AddNetworkFlag(clearCacheCmd)
}
