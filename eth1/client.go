// Package eth1 reads operator and signing-key data from the protocol
// contracts. All calls are read-only; the checker never mutates chain state.
package eth1

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/networkconfig"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/utils/tasks"
)

const (
	defaultConnectionTimeout = 10 * time.Second
	connectRetries           = 3
)

// Reader is the narrow read interface the pipeline consumes. It is satisfied
// by Client and by in-memory fakes in tests.
type Reader interface {
	GetNodeOperatorsCount(ctx context.Context) (uint64, error)
	GetNodeOperator(ctx context.Context, id uint64) (registry.Operator, error)
	GetSigningKey(ctx context.Context, operatorID uint64, index uint64) (registry.Key, error)
	GetWithdrawalCredentials(ctx context.Context) ([]byte, error)
}

var _ Reader = &Client{}

// Client reads the Lido and NodeOperatorsRegistry contracts over JSON-RPC.
type Client struct {
	logger *zap.Logger
	conn   *ethclient.Client

	lidoAddr     common.Address
	registryAddr common.Address
	lidoABI      string
	registryABI  string

	connectionTimeout time.Duration

	lido     *bind.BoundContract
	registry *bind.BoundContract
}

// New connects to the eth1 node and binds the protocol contracts for the
// given network.
func New(ctx context.Context, nodeAddr string, network networkconfig.NetworkConfig, opts ...Option) (*Client, error) {
	client := &Client{
		logger:            zap.NewNop(),
		lidoAddr:          network.LidoAddr,
		registryAddr:      network.RegistryAddr,
		lidoABI:           lidoABI,
		registryABI:       registryABI,
		connectionTimeout: defaultConnectionTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}

	err := tasks.Retry(func() error {
		dialCtx, cancel := context.WithTimeout(ctx, client.connectionTimeout)
		defer cancel()

		conn, err := ethclient.DialContext(dialCtx, nodeAddr)
		if err != nil {
			client.logger.Warn("failed to connect to eth1 node, retrying", zap.Error(err))
			return err
		}
		client.conn = conn
		return nil
	}, connectRetries)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to eth1 node")
	}

	if err := client.bindContracts(); err != nil {
		client.conn.Close()
		return nil, err
	}

	client.logger.Info("connected to eth1 node",
		zap.String("network", network.Name),
		zap.String("registryAddr", client.registryAddr.Hex()))

	return client, nil
}

func (c *Client) bindContracts() error {
	parsedLido, err := abi.JSON(strings.NewReader(c.lidoABI))
	if err != nil {
		return errors.Wrap(err, "failed to parse Lido ABI")
	}
	parsedRegistry, err := abi.JSON(strings.NewReader(c.registryABI))
	if err != nil {
		return errors.Wrap(err, "failed to parse registry ABI")
	}

	c.lido = bind.NewBoundContract(c.lidoAddr, parsedLido, c.conn, c.conn, c.conn)
	c.registry = bind.NewBoundContract(c.registryAddr, parsedRegistry, c.conn, c.conn, c.conn)
	return nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.conn.Close()
}

// GetWithdrawalCredentials reads the protocol-wide withdrawal credentials
// from the Lido contract.
func (c *Client) GetWithdrawalCredentials(ctx context.Context) ([]byte, error) {
	var out []interface{}
	if err := c.lido.Call(&bind.CallOpts{Context: ctx}, &out, "getWithdrawalCredentials"); err != nil {
		return nil, errors.Wrap(err, "failed to call getWithdrawalCredentials")
	}
	wc, ok := out[0].([32]byte)
	if !ok {
		return nil, errors.New("unexpected type for withdrawal credentials")
	}
	return wc[:], nil
}

// GetNodeOperatorsCount reads the total number of registered operators.
func (c *Client) GetNodeOperatorsCount(ctx context.Context) (uint64, error) {
	var out []interface{}
	if err := c.registry.Call(&bind.CallOpts{Context: ctx}, &out, "getNodeOperatorsCount"); err != nil {
		return 0, errors.Wrap(err, "failed to call getNodeOperatorsCount")
	}
	count, ok := out[0].(*big.Int)
	if !ok {
		return 0, errors.New("unexpected type for operator count")
	}
	return count.Uint64(), nil
}

// GetNodeOperator reads one operator's metadata. Keys are loaded separately
// with GetSigningKey.
func (c *Client) GetNodeOperator(ctx context.Context, id uint64) (registry.Operator, error) {
	var out []interface{}
	err := c.registry.Call(&bind.CallOpts{Context: ctx}, &out, "getNodeOperator", new(big.Int).SetUint64(id), true)
	if err != nil {
		return registry.Operator{}, errors.Wrapf(err, "failed to call getNodeOperator(%d)", id)
	}
	if len(out) != 7 {
		return registry.Operator{}, errors.Errorf("unexpected getNodeOperator output length %d", len(out))
	}

	operator := registry.Operator{ID: id}
	var ok bool
	if operator.Active, ok = out[0].(bool); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator active flag")
	}
	if operator.Name, ok = out[1].(string); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator name")
	}
	if operator.RewardAddress, ok = out[2].(common.Address); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator reward address")
	}
	if operator.StakingLimit, ok = out[3].(uint64); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator staking limit")
	}
	if operator.StoppedValidators, ok = out[4].(uint64); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator stopped validators")
	}
	if operator.TotalSigningKeys, ok = out[5].(uint64); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator total signing keys")
	}
	if operator.UsedSigningKeys, ok = out[6].(uint64); !ok {
		return registry.Operator{}, errors.New("unexpected type for operator used signing keys")
	}

	return operator, nil
}

// GetSigningKey reads one signing key of an operator by index.
func (c *Client) GetSigningKey(ctx context.Context, operatorID uint64, index uint64) (registry.Key, error) {
	var out []interface{}
	err := c.registry.Call(&bind.CallOpts{Context: ctx}, &out, "getSigningKey",
		new(big.Int).SetUint64(operatorID), new(big.Int).SetUint64(index))
	if err != nil {
		return registry.Key{}, errors.Wrapf(err, "failed to call getSigningKey(%d, %d)", operatorID, index)
	}
	if len(out) != 3 {
		return registry.Key{}, errors.Errorf("unexpected getSigningKey output length %d", len(out))
	}

	key := registry.Key{Index: index}
	var ok bool
	if key.PublicKey, ok = out[0].([]byte); !ok {
		return registry.Key{}, errors.New("unexpected type for signing key")
	}
	if key.DepositSignature, ok = out[1].([]byte); !ok {
		return registry.Key{}, errors.New("unexpected type for deposit signature")
	}
	if key.Used, ok = out[2].(bool); !ok {
		return registry.Key{}, errors.New("unexpected type for used flag")
	}

	return key, nil
}
