// Package networkconfig carries the static per-network parameters the key
// checker needs: chain identity, the deposit-domain fork version and the
// protocol contract addresses.
package networkconfig

import (
	"fmt"
	"strings"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common"
)

// NetworkConfig describes one supported Ethereum network.
type NetworkConfig struct {
	Name               string
	ChainID            uint64
	GenesisForkVersion phase0.Version
	LidoAddr           common.Address
	RegistryAddr       common.Address
}

func (n NetworkConfig) String() string {
	return fmt.Sprintf("%s (chain %d)", n.Name, n.ChainID)
}

var SupportedConfigs = map[string]NetworkConfig{
	Mainnet.Name: Mainnet,
	Goerli.Name:  Goerli,
	Holesky.Name: Holesky,
}

// GetNetworkByName resolves a network preset by its case-insensitive name.
func GetNetworkByName(name string) (NetworkConfig, error) {
	if network, ok := SupportedConfigs[strings.ToLower(name)]; ok {
		return network, nil
	}

	return NetworkConfig{}, fmt.Errorf("network not supported: %v", name)
}
