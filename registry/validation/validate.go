package validation

import (
	"runtime"
	"sync"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/herumi/bls-eth-go-binary/bls"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
)

var (
	blsInitOnce sync.Once
	blsInitErr  error
)

func initBLS() error {
	blsInitOnce.Do(func() {
		if err := bls.Init(bls.BLS12_381); err != nil {
			blsInitErr = err
			return
		}
		blsInitErr = bls.SetETHmode(bls.EthModeDraft07)
	})
	return blsInitErr
}

// Validator checks deposit signatures of registry keys. It is stateless with
// respect to network identity; the deposit domain is passed in by the caller.
type Validator struct {
	logger      *zap.Logger
	concurrency int
}

// New creates a Validator. A non-positive concurrency falls back to the
// number of CPUs.
func New(logger *zap.Logger, concurrency int) *Validator {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Validator{
		logger:      logger.Named(logging.NameKeyValidator),
		concurrency: concurrency,
	}
}

// Validate reports whether the key's deposit signature verifies for the
// given withdrawal credentials under the domain. Malformed key or signature
// bytes yield false rather than an error.
func Validate(key registry.Key, withdrawalCredentials []byte, domain phase0.Domain) bool {
	if err := initBLS(); err != nil {
		return false
	}
	if len(key.PublicKey) != registry.PublicKeyLength || len(key.DepositSignature) != registry.SignatureLength {
		return false
	}

	message := &phase0.DepositMessage{
		WithdrawalCredentials: withdrawalCredentials,
		Amount:                DepositAmount,
	}
	copy(message.PublicKey[:], key.PublicKey)

	messageRoot, err := message.HashTreeRoot()
	if err != nil {
		return false
	}
	signingRoot, err := ComputeSigningRoot(messageRoot, domain)
	if err != nil {
		return false
	}

	pubKey := &bls.PublicKey{}
	if err := pubKey.Deserialize(key.PublicKey); err != nil {
		return false
	}
	signature := &bls.Sign{}
	if err := signature.Deserialize(key.DepositSignature); err != nil {
		return false
	}

	return signature.VerifyByte(pubKey, signingRoot[:])
}

// ValidateMany validates every key of every operator independently and
// returns a roster with ValidSignature set on each key. Keys are validated
// across a bounded worker pool; the result is identical to sequential
// execution.
func (v *Validator) ValidateMany(operators []registry.Operator, withdrawalCredentials []byte, domain phase0.Domain) []registry.Operator {
	annotated := make([]registry.Operator, len(operators))
	for i, operator := range operators {
		keys := make([]registry.Key, len(operator.Keys))
		copy(keys, operator.Keys)
		annotated[i] = operator.WithKeys(keys)
	}

	var eg errgroup.Group
	eg.SetLimit(v.concurrency)

	for i := range annotated {
		for j := range annotated[i].Keys {
			key := &annotated[i].Keys[j]
			eg.Go(func() error {
				key.ValidSignature = Validate(*key, withdrawalCredentials, domain)
				return nil
			})
		}
	}
	_ = eg.Wait() // validation never errors, invalid signatures are data

	v.logger.Debug("completed signature validation",
		zap.Int("keys", registry.CountKeys(annotated)))

	return annotated
}

// ValidateKeys is ValidateMany for a flat key list, used for keys supplied
// by file rather than loaded from the registry.
func (v *Validator) ValidateKeys(keys []registry.Key, withdrawalCredentials []byte, domain phase0.Domain) []registry.Key {
	annotated := make([]registry.Key, len(keys))
	copy(annotated, keys)

	var eg errgroup.Group
	eg.SetLimit(v.concurrency)

	for i := range annotated {
		key := &annotated[i]
		eg.Go(func() error {
			key.ValidSignature = Validate(*key, withdrawalCredentials, domain)
			return nil
		})
	}
	_ = eg.Wait()

	return annotated
}
