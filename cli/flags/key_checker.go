package flags

import (
	"github.com/spf13/cobra"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/utils/cliflag"
)

// Flag names.
const (
	configFlag          = "config"
	rpcFlag             = "rpc"
	networkFlag         = "network"
	lidoAddressFlag     = "lido-address"
	registryAddressFlag = "registry-address"
	lidoABIFlag         = "lido-abi"
	registryABIFlag     = "registry-abi"
	fileFlag            = "file"
	concurrencyFlag     = "concurrency"
)

// AddConfigFlag adds the optional config file path flag to the command
func AddConfigFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, configFlag, "", "Path to configuration file", false)
}

// GetConfigFlagValue gets the config file path flag from the command
func GetConfigFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(configFlag)
}

// AddRPCFlag adds the eth1 node address flag to the command
func AddRPCFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, rpcFlag, "", "RPC provider for network calls (local node / Infura / Alchemy)", true)
}

// GetRPCFlagValue gets the eth1 node address flag from the command
func GetRPCFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(rpcFlag)
}

// AddNetworkFlag adds the network name flag to the command
func AddNetworkFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, networkFlag, "mainnet", "Network to use: mainnet / goerli / holesky", false)
}

// GetNetworkFlagValue gets the network name flag from the command
func GetNetworkFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(networkFlag)
}

// AddLidoAddressFlag adds the Lido contract address override flag to the command
func AddLidoAddressFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, lidoAddressFlag, "", "Address of the main contract (overrides the network preset)", false)
}

// GetLidoAddressFlagValue gets the Lido contract address override flag from the command
func GetLidoAddressFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(lidoAddressFlag)
}

// AddRegistryAddressFlag adds the operators contract address override flag to the command
func AddRegistryAddressFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, registryAddressFlag, "", "Address of the operators contract (overrides the network preset)", false)
}

// GetRegistryAddressFlagValue gets the operators contract address override flag from the command
func GetRegistryAddressFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(registryAddressFlag)
}

// AddLidoABIFlag adds the Lido ABI file path flag to the command
func AddLidoABIFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, lidoABIFlag, "", "ABI file path for the main contract", false)
}

// GetLidoABIFlagValue gets the Lido ABI file path flag from the command
func GetLidoABIFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(lidoABIFlag)
}

// AddRegistryABIFlag adds the operators contract ABI file path flag to the command
func AddRegistryABIFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, registryABIFlag, "", "ABI file path for the operators contract", false)
}

// GetRegistryABIFlagValue gets the operators contract ABI file path flag from the command
func GetRegistryABIFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(registryABIFlag)
}

// AddConcurrencyFlag adds the worker limit flag to the command
func AddConcurrencyFlag(c *cobra.Command) {
	cliflag.AddPersistentIntFlag(c, concurrencyFlag, 0, "Worker limit for key loading and validation, overrides the config (0 = number of CPUs)", false)
}

// GetConcurrencyFlagValue gets the worker limit flag from the command
func GetConcurrencyFlagValue(c *cobra.Command) (uint64, error) {
	return c.Flags().GetUint64(concurrencyFlag)
}

// AddFileFlag adds the input file flag to the command
func AddFileFlag(c *cobra.Command) {
	cliflag.AddPersistentStringFlag(c, fileFlag, "input.json", "JSON input file with proposed keys", false)
}

// GetFileFlagValue gets the input file flag from the command
func GetFileFlagValue(c *cobra.Command) (string, error) {
	return c.Flags().GetString(fileFlag)
}
