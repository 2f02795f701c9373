package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/cli/flags"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/eth1"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry/validation"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/report"
)

// validateFileKeysCmd audits proposed keys from a JSON file before they are
// submitted to the registry: signatures are checked strictly and every key
// is probed against the full on-chain roster for duplicates.
var validateFileKeysCmd = &cobra.Command{
	Use:   "validate-file-keys",
	Short: "checks node operator keys from an input file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup(cmd)
		defer logging.CapturePanic(Logger)

		if n, err := flags.GetConcurrencyFlagValue(cmd); err == nil && n > 0 {
			cfg.Concurrency = int(n)
		}

		filePath, err := flags.GetFileFlagValue(cmd)
		if err != nil {
			Logger.Fatal("failed to get file flag value", zap.Error(err))
		}
		file, err := os.Open(filePath)
		if err != nil {
			Logger.Fatal("failed to open input file", zap.Error(err))
		}
		keys, err := registry.ParseKeyFile(file)
		_ = file.Close()
		if err != nil {
			Logger.Fatal("failed to parse input file", zap.Error(err))
		}
		Logger.Info("loaded proposed keys", zap.Int("count", len(keys)))

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

		validator := validation.New(Logger, cfg.Concurrency)
		validated := validator.ValidateKeys(keys, withdrawalCredentials, domain)

		// Proposed keys are not registered yet, so every on-chain match is
		// reported: no self-exclusion applies.
		for i := range validated {
			matches := registry.FindDuplicates(operators, nil, validated[i])
			validated[i].Duplicate = len(matches) > 0
			validated[i].Duplicates = matches
		}

		reporter := report.New(Logger, os.Stdout)
		reporter.PrintFileKeys(validated)
	},
}

func init() {
	flags.AddConfigFlag(validateFileKeysCmd)
	flags.AddFileFlag(validateFileKeysCmd)
	flags.AddRPCFlag(validateFileKeysCmd)
	flags.AddNetworkFlag(validateFileKeysCmd)
	flags.AddLidoAddressFlag(validateFileKeysCmd)
	flags.AddRegistryAddressFlag(validateFileKeysCmd)
	flags.AddLidoABIFlag(validateFileKeysCmd)
	flags.AddRegistryABIFlag(validateFileKeysCmd)
	flags.AddConcurrencyFlag(validateFileKeysCmd)
}
