package networkconfig

import (
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common"
)

// Goerli carries the Prater testnet deployment of the protocol.
var Goerli = NetworkConfig{
	Name:               "goerli",
	ChainID:            5,
	GenesisForkVersion: phase0.Version{0x00, 0x00, 0x10, 0x20},
	LidoAddr:           common.HexToAddress("0x1643E812aE58766192Cf7D2Cf9567dF2C37e9B7F"),
	RegistryAddr:       common.HexToAddress("0x9D4AF1Ee19Dad8857db3a45B0374c81c8A1C6320"),
}
