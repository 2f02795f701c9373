package networkconfig

import (
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common"
)

var Mainnet = NetworkConfig{
	Name:               "mainnet",
	ChainID:            1,
	GenesisForkVersion: phase0.Version{0x00, 0x00, 0x00, 0x00},
	LidoAddr:           common.HexToAddress("0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84"),
	RegistryAddr:       common.HexToAddress("0x55032650b14df07b85bF18A3a3eC8E0Af2e028d5"),
}
