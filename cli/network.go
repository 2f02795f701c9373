package cli

import (
	"context"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/cli/flags"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/eth1"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/networkconfig"
)

// networkFromFlags resolves the network preset selected on the command line.
func networkFromFlags(cmd *cobra.Command) networkconfig.NetworkConfig {
	networkName, err := flags.GetNetworkFlagValue(cmd)
	if err != nil {
		Logger.Fatal("failed to get network flag value", zap.Error(err))
	}
	network, err := networkconfig.GetNetworkByName(networkName)
	if err != nil {
		Logger.Fatal("unknown network", zap.Error(err))
	}
	return network
}

// connectFromFlags dials the eth1 node and binds the protocol contracts,
// applying any address or ABI overrides given on the command line.
func connectFromFlags(ctx context.Context, cmd *cobra.Command, network networkconfig.NetworkConfig) *eth1.Client {
	nodeAddr, err := flags.GetRPCFlagValue(cmd)
	if err != nil {
		Logger.Fatal("failed to get rpc flag value", zap.Error(err))
	}

	opts := []eth1.Option{eth1.WithLogger(Logger)}

	if addr, err := flags.GetLidoAddressFlagValue(cmd); err == nil && addr != "" {
		opts = append(opts, eth1.WithLidoAddr(common.HexToAddress(addr)))
	}
	if addr, err := flags.GetRegistryAddressFlagValue(cmd); err == nil && addr != "" {
		opts = append(opts, eth1.WithRegistryAddr(common.HexToAddress(addr)))
	}
	if path, err := flags.GetLidoABIFlagValue(cmd); err == nil && path != "" {
		opts = append(opts, eth1.WithLidoABI(readABIFile(path)))
	}
	if path, err := flags.GetRegistryABIFlagValue(cmd); err == nil && path != "" {
		opts = append(opts, eth1.WithRegistryABI(readABIFile(path)))
	}

	client, err := eth1.New(ctx, nodeAddr, network, opts...)
	if err != nil {
		Logger.Fatal("failed to connect to eth1 node", zap.Error(err))
	}
	return client
}

func readABIFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		Logger.Fatal("failed to read ABI file", zap.String("path", path), zap.Error(err))
	}
	return string(data)
}
