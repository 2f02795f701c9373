package eth1

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
)

// fakeReader serves a fixed roster without touching an execution client.
type fakeReader struct {
	operators []registry.Operator

	failOperator   int64
	failSigningKey bool
}

func (f *fakeReader) GetNodeOperatorsCount(context.Context) (uint64, error) {
	return uint64(len(f.operators)), nil
}

func (f *fakeReader) GetNodeOperator(_ context.Context, id uint64) (registry.Operator, error) {
	if f.failOperator == int64(id) {
		return registry.Operator{}, errors.New("execution layer request failed")
	}
	operator := f.operators[id]
	operator.Keys = nil
	return operator, nil
}

func (f *fakeReader) GetSigningKey(_ context.Context, operatorID uint64, index uint64) (registry.Key, error) {
	if f.failSigningKey {
		return registry.Key{}, errors.New("execution layer request failed")
	}
	return f.operators[operatorID].Keys[index], nil
}

func (f *fakeReader) GetWithdrawalCredentials(context.Context) ([]byte, error) {
	return make([]byte, 32), nil
}

func fakeRoster(operatorCount int, keysPerOperator int) []registry.Operator {
	operators := make([]registry.Operator, operatorCount)
	for id := range operators {
		keys := make([]registry.Key, keysPerOperator)
		for index := range keys {
			keys[index] = registry.Key{
				Index:            uint64(index),
				PublicKey:        []byte(fmt.Sprintf("pubkey-%d-%d", id, index)),
				DepositSignature: []byte(fmt.Sprintf("signature-%d-%d", id, index)),
				Used:             index == 0,
			}
		}
		operators[id] = registry.Operator{
			ID:               uint64(id),
			Name:             fmt.Sprintf("Operator %d", id),
			Active:           true,
			TotalSigningKeys: uint64(keysPerOperator),
			UsedSigningKeys:  1,
			Keys:             keys,
		}
	}
	return operators
}

func TestLoadOperators(t *testing.T) {
	reader := &fakeReader{operators: fakeRoster(5, 3), failOperator: -1}

	loaded, err := LoadOperators(context.Background(), logging.TestLogger(t), reader, 2)
	require.NoError(t, err)

	require.Len(t, loaded, 5)
	for id, operator := range loaded {
		require.Equal(t, uint64(id), operator.ID)
		require.Equal(t, fmt.Sprintf("Operator %d", id), operator.Name)
		require.Len(t, operator.Keys, 3)
		for index, key := range operator.Keys {
			require.Equal(t, uint64(index), key.Index)
			require.Equal(t, []byte(fmt.Sprintf("pubkey-%d-%d", id, index)), key.PublicKey)
		}
	}
	require.Equal(t, 15, registry.CountKeys(loaded))
}

func TestLoadOperatorsUnboundedConcurrency(t *testing.T) {
	reader := &fakeReader{operators: fakeRoster(3, 2), failOperator: -1}

	loaded, err := LoadOperators(context.Background(), logging.TestLogger(t), reader, 0)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
}

func TestLoadOperatorsEmptyRegistry(t *testing.T) {
	reader := &fakeReader{failOperator: -1}

	loaded, err := LoadOperators(context.Background(), logging.TestLogger(t), reader, 4)
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestLoadOperatorsPropagatesOperatorError(t *testing.T) {
	reader := &fakeReader{operators: fakeRoster(4, 2), failOperator: 2}

	_, err := LoadOperators(context.Background(), logging.TestLogger(t), reader, 1)
	require.Error(t, err)
}

func TestLoadOperatorsPropagatesKeyError(t *testing.T) {
	reader := &fakeReader{operators: fakeRoster(2, 2), failOperator: -1, failSigningKey: true}

	_, err := LoadOperators(context.Background(), logging.TestLogger(t), reader, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "operator")
}
