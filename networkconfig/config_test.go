package networkconfig

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestGetNetworkByName(t *testing.T) {
	for _, name := range []string{"mainnet", "Mainnet", "MAINNET"} {
		network, err := GetNetworkByName(name)
		require.NoError(t, err, name)
		require.Equal(t, Mainnet, network)
	}

	network, err := GetNetworkByName("holesky")
	require.NoError(t, err)
	require.Equal(t, uint64(17000), network.ChainID)
}

func TestGetNetworkByNameUnknown(t *testing.T) {
	_, err := GetNetworkByName("sepolia")
	require.Error(t, err)
	require.Contains(t, err.Error(), "network not supported")
}

func TestSupportedConfigsConsistency(t *testing.T) {
	require.Len(t, SupportedConfigs, 3)

	chainIDs := map[uint64]bool{}
	for name, network := range SupportedConfigs {
		require.Equal(t, name, network.Name)
		require.False(t, chainIDs[network.ChainID], "duplicate chain id %d", network.ChainID)
		chainIDs[network.ChainID] = true
		require.NotEqual(t, common.Address{}, network.LidoAddr, "%s Lido address", name)
		require.NotEqual(t, common.Address{}, network.RegistryAddr, "%s registry address", name)
	}
}
