// Package validation verifies deposit signatures of registry keys against
// the deposit-contract signing domain.
package validation

import (
	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/pkg/errors"
)

// DepositAmount is the fixed protocol deposit of 32 ETH expressed in gwei.
const DepositAmount = phase0.Gwei(32 * 1e9)

// DOMAIN_DEPOSIT per the deposit-contract signing specification.
var depositDomainType = phase0.DomainType{0x03, 0x00, 0x00, 0x00}

// ComputeDepositDomain derives the deposit signing domain for a genesis fork
// version. Deposits are signed against a zero genesis validators root.
func ComputeDepositDomain(forkVersion phase0.Version) (phase0.Domain, error) {
	forkData := &phase0.ForkData{
		CurrentVersion:        forkVersion,
		GenesisValidatorsRoot: phase0.Root{},
	}
	forkDataRoot, err := forkData.HashTreeRoot()
	if err != nil {
		return phase0.Domain{}, errors.Wrap(err, "failed to compute fork data root")
	}

	var domain phase0.Domain
	copy(domain[:], depositDomainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain, nil
}

// ComputeSigningRoot combines an object root with a domain.
func ComputeSigningRoot(objectRoot phase0.Root, domain phase0.Domain) (phase0.Root, error) {
	signingData := &phase0.SigningData{
		ObjectRoot: objectRoot,
		Domain:     domain,
	}
	root, err := signingData.HashTreeRoot()
	if err != nil {
		return phase0.Root{}, errors.Wrap(err, "failed to compute signing root")
	}
	return root, nil
}
