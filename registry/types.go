// Package registry holds the in-memory model of the NodeOperatorsRegistry
// roster and the reconciliation and duplicate-detection logic that runs on it.
package registry

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// Expected byte lengths of BLS12-381 material on the registry contract.
const (
	PublicKeyLength = 48
	SignatureLength = 96
)

// Operator is one node operator registered on the NodeOperatorsRegistry
// contract, together with its signing keys. Identity fields are immutable
// within a run; Keys is populated in a second pass after the metadata fetch.
type Operator struct {
	ID                uint64
	Name              string
	Active            bool
	RewardAddress     common.Address
	StakingLimit      uint64
	StoppedValidators uint64
	TotalSigningKeys  uint64
	UsedSigningKeys   uint64
	Keys              []Key
}

// Approved reports whether the operator has been granted a non-zero
// staking limit by the DAO.
func (o *Operator) Approved() bool {
	return o.StakingLimit > 0
}

// WithKeys returns a copy of the operator carrying the given key list.
func (o Operator) WithKeys(keys []Key) Operator {
	o.Keys = keys
	return o
}

// Key is one validator public key registered to an operator.
// (Operator.ID, Key.Index) uniquely identifies a registration slot.
type Key struct {
	Index            uint64
	PublicKey        []byte
	DepositSignature []byte
	Used             bool

	// Annotations produced by the pipeline, not part of on-chain identity.
	ValidSignature bool
	Duplicate      bool
	Duplicates     []DuplicateMatch
}

// PublicKeyHex returns the hex encoding of the public key without 0x prefix,
// which is also the cache lookup key.
func (k *Key) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// DuplicateMatch is a snapshot of the remote side of one duplicated public
// key. Values are copied rather than referenced so reporting never has to
// walk the roster again.
type DuplicateMatch struct {
	OperatorID     uint64
	OperatorName   string
	OperatorActive bool
	StakingLimit   uint64
	KeyIndex       uint64
	KeyUsed        bool
}

// Approved reports whether the matched operator has a non-zero staking limit.
func (m *DuplicateMatch) Approved() bool {
	return m.StakingLimit > 0
}
