package eth1

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
)

// Option defines a Client configuration option.
type Option func(*Client)

// WithLogger enables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger.Named(logging.NameRegistry)
	}
}

// WithConnectionTimeout sets the timeout for the network connection to the eth1 node.
func WithConnectionTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.connectionTimeout = timeout
	}
}

// WithLidoAddr overrides the network preset's Lido contract address.
func WithLidoAddr(addr common.Address) Option {
	return func(c *Client) {
		c.lidoAddr = addr
	}
}

// WithRegistryAddr overrides the network preset's NodeOperatorsRegistry address.
func WithRegistryAddr(addr common.Address) Option {
	return func(c *Client) {
		c.registryAddr = addr
	}
}

// WithLidoABI replaces the built-in Lido ABI fragment.
func WithLidoABI(abiJSON string) Option {
	return func(c *Client) {
		c.lidoABI = abiJSON
	}
}

// WithRegistryABI replaces the built-in NodeOperatorsRegistry ABI fragment.
func WithRegistryABI(abiJSON string) Option {
	return func(c *Client) {
		c.registryABI = abiJSON
	}
}
