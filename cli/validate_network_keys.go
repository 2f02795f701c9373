package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/cli/flags"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/eth1"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry/keycache"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry/validation"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/report"
)

// validateNetworkKeysCmd audits every key registered on-chain.
var validateNetworkKeysCmd = &cobra.Command{
	Use:   "validate-network-keys",
	Short: "checks node operator keys from the network",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup(cmd)
		defer logging.CapturePanic(Logger)

		if n, err := flags.GetConcurrencyFlagValue(cmd); err == nil && n > 0 {
			cfg.Concurrency = int(n)
		}

		ctx := cmd.Context()
		network := networkFromFlags(cmd)

		client := connectFromFlags(ctx, cmd, network)
		defer client.Close()

		withdrawalCredentials, err := client.GetWithdrawalCredentials(ctx)
		if err != nil {
			Logger.Fatal("failed to load withdrawal credentials", zap.Error(err))
		}
		domain, err := validation.ComputeDepositDomain(network.GenesisForkVersion)
		if err != nil {
			Logger.Fatal("failed to compute deposit domain", zap.Error(err))
		}

		operators, err := eth1.LoadOperators(ctx, Logger, client, cfg.Concurrency)
		if err != nil {
			Logger.Fatal("failed to load operators", zap.Error(err))
		}

		// Keys already included in a deposit are skipped: their signatures
		// were consumed by the deposit contract and cannot be rotated.
		usedKeys, unusedKeys := registry.Partition(operators, func(k registry.Key) bool {
			return k.Used
		})

		dbOptions := cfg.DB
		dbOptions.Ctx = ctx
		cache, err := keycache.Open(Logger, cfg.DataDir, network.ChainID, dbOptions)
		if err != nil {
			Logger.Fatal("failed to open key cache", zap.Error(err))
		}
		defer func() {
			if err := cache.Close(); err != nil {
				Logger.Error("failed to close key cache", zap.Error(err))
			}
		}()

		cachedKeys, newKeys, err := cache.GetMany(withdrawalCredentials, unusedKeys)
		if err != nil {
			Logger.Fatal("failed to read key cache", zap.Error(err))
		}
		Logger.Info("reconciled keys against the cache",
			zap.Int("used", registry.CountKeys(usedKeys)),
			zap.Int("cached", registry.CountKeys(cachedKeys)),
			zap.Int("fresh", registry.CountKeys(newKeys)))

		validator := validation.New(Logger, cfg.Concurrency)
		validatedKeys := validator.ValidateMany(newKeys, withdrawalCredentials, domain)

		if err := cache.SaveMany(withdrawalCredentials, validatedKeys); err != nil {
			Logger.Fatal("failed to save validated keys to cache", zap.Error(err))
		}

		merged, err := registry.Merge(usedKeys, cachedKeys, validatedKeys)
		if err != nil {
			Logger.Fatal("failed to merge key rosters", zap.Error(err))
		}

		registry.FindAllDuplicates(merged)

		reporter := report.New(Logger, os.Stdout)
		invalid := reporter.PrintInvalidSignatures(merged)
		duplicates := reporter.PrintDuplicates(merged)
		reporter.PrintSummary(report.Summary{
			Operators:         len(merged),
			TotalKeys:         registry.CountKeys(merged),
			UsedKeys:          registry.CountKeys(usedKeys),
			CachedKeys:        registry.CountKeys(cachedKeys),
			ValidatedKeys:     registry.CountKeys(validatedKeys),
			InvalidSignatures: invalid,
			DuplicateKeys:     duplicates,
		})
	},
}

func init() {
	flags.AddConfigFlag(validateNetworkKeysCmd)
	flags.AddRPCFlag(validateNetworkKeysCmd)
	flags.AddNetworkFlag(validateNetworkKeysCmd)
	flags.AddLidoAddressFlag(validateNetworkKeysCmd)
	flags.AddRegistryAddressFlag(validateNetworkKeysCmd)
	flags.AddLidoABIFlag(validateNetworkKeysCmd)
	flags.AddRegistryABIFlag(validateNetworkKeysCmd)
	flags.AddConcurrencyFlag(validateNetworkKeysCmd)
}
