package networkconfig

import (
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/ethereum/go-ethereum/common"
)

var Holesky = NetworkConfig{
	Name:               "holesky",
	ChainID:            17000,
	GenesisForkVersion: phase0.Version{0x01, 0x01, 0x70, 0x00},
	LidoAddr:           common.HexToAddress("0x3F1c547b21f65e10480dE3ad8E19fAAC46C95034"),
	RegistryAddr:       common.HexToAddress("0x595F64Ddc3856a3b5Ff4f4CC1d1fb4B46cFd2bAC"),
}
