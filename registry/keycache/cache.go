// Package keycache persists validation outcomes per public key so repeat
// runs only re-validate keys that changed on-chain.
package keycache

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/storage/basedb"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/storage/kv"
)

// ErrStaleCache is returned when the cache carries validation results for a
// different withdrawal-credentials value than the live one. The whole cache
// is rejected at once; the operator must clear it to continue.
var ErrStaleCache = errors.New("cached withdrawal credentials do not match the live value, clear the cache to continue")

const cacheDirPrefix = "lido-keys-cache-"

var (
	keysPrefix = []byte("keys/")
	metaPrefix = []byte("meta/")
	wcKey      = []byte("wc")
)

// record is the persisted validation outcome for one public key.
type record struct {
	Key              string `json:"key"`
	Index            uint64 `json:"index"`
	Used             bool   `json:"used"`
	DepositSignature string `json:"depositSignature"`
	ValidSignature   bool   `json:"valid_signature"`
}

// KeyCache is the persistent per-network validation cache.
type KeyCache struct {
	logger *zap.Logger
	db     basedb.Database
}

// New wraps an already-open database. Used by tests to inject a store.
func New(logger *zap.Logger, db basedb.Database) *KeyCache {
	return &KeyCache{
		logger: logger.Named(logging.NameKeyCache),
		db:     db,
	}
}

// Open opens (creating if absent) the cache store scoped to one chain id.
// The caller must Close the cache on every exit path.
func Open(logger *zap.Logger, dataDir string, chainID uint64, options basedb.Options) (*KeyCache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve user home directory")
		}
		dataDir = home
	}
	options.Path = filepath.Join(dataDir, fmt.Sprintf("%s%d", cacheDirPrefix, chainID))

	db, err := kv.New(logger, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open key cache")
	}

	return New(logger, db), nil
}

// Close releases the underlying store.
func (c *KeyCache) Close() error {
	return c.db.Close()
}

// CheckCoherency verifies that the cache belongs to the given withdrawal
// credentials. An empty cache is always coherent; a non-empty cache with a
// missing or different fingerprint fails with ErrStaleCache.
func (c *KeyCache) CheckCoherency(withdrawalCredentials []byte) error {
	stored, found, err := c.db.Get(metaPrefix, wcKey)
	if err != nil {
		return errors.Wrap(err, "failed to read withdrawal credentials fingerprint")
	}
	if !found {
		count, err := c.db.CountPrefix(keysPrefix)
		if err != nil {
			return errors.Wrap(err, "failed to count cached keys")
		}
		if count == 0 {
			return nil
		}
		return ErrStaleCache
	}
	if string(stored.Value) != hex.EncodeToString(withdrawalCredentials) {
		return ErrStaleCache
	}
	return nil
}

// Clear deletes every record in the store.
func (c *KeyCache) Clear() error {
	if err := c.db.DropPrefix(keysPrefix); err != nil {
		return errors.Wrap(err, "failed to drop cached keys")
	}
	if err := c.db.DropPrefix(metaPrefix); err != nil {
		return errors.Wrap(err, "failed to drop cache metadata")
	}
	return nil
}

// GetMany partitions the given roster into keys with a valid cache hit and
// keys that need fresh validation. A hit is valid only when the cached
// deposit signature matches the live one byte-for-byte; a mismatched hit is
// logged as a stale record and treated as a miss. Both returned rosters
// carry the full operator metadata and preserve per-operator key order.
func (c *KeyCache) GetMany(withdrawalCredentials []byte, operators []registry.Operator) (cached []registry.Operator, uncached []registry.Operator, err error) {
	if err := c.CheckCoherency(withdrawalCredentials); err != nil {
		return nil, nil, err
	}

	cached = make([]registry.Operator, 0, len(operators))
	uncached = make([]registry.Operator, 0, len(operators))

	for _, operator := range operators {
		var cachedKeys, newKeys []registry.Key

		for _, key := range operator.Keys {
			rec, found, err := c.get(key.PublicKeyHex())
			if err != nil {
				return nil, nil, err
			}
			if found {
				cachedSignature, err := hex.DecodeString(rec.DepositSignature)
				if err == nil && bytes.Equal(cachedSignature, key.DepositSignature) {
					key.ValidSignature = rec.ValidSignature
					cachedKeys = append(cachedKeys, key)
					continue
				}
				c.logger.Warn("stale cache record, re-validating key",
					zap.String("pubKey", key.PublicKeyHex()),
					zap.String("operator", operator.Name),
					zap.Uint64("operatorId", operator.ID))
			}
			newKeys = append(newKeys, key)
		}

		cached = append(cached, operator.WithKeys(cachedKeys))
		uncached = append(uncached, operator.WithKeys(newKeys))
	}

	return cached, uncached, nil
}

// SaveMany writes the withdrawal-credentials fingerprint and upserts one
// record per key across all operators. Records are independently keyed and
// idempotently overwritten, so a crash mid-save is repaired by a retry.
func (c *KeyCache) SaveMany(withdrawalCredentials []byte, operators []registry.Operator) error {
	if err := c.CheckCoherency(withdrawalCredentials); err != nil {
		return err
	}

	if err := c.db.Set(metaPrefix, wcKey, []byte(hex.EncodeToString(withdrawalCredentials))); err != nil {
		return errors.Wrap(err, "failed to store withdrawal credentials fingerprint")
	}

	var keys []registry.Key
	for _, operator := range operators {
		keys = append(keys, operator.Keys...)
	}

	return c.db.SetMany(keysPrefix, len(keys), func(i int) (basedb.Obj, error) {
		key := keys[i]
		value, err := json.Marshal(record{
			Key:              key.PublicKeyHex(),
			Index:            key.Index,
			Used:             key.Used,
			DepositSignature: hex.EncodeToString(key.DepositSignature),
			ValidSignature:   key.ValidSignature,
		})
		if err != nil {
			return basedb.Obj{}, errors.Wrap(err, "failed to marshal cache record")
		}
		return basedb.Obj{Key: []byte(key.PublicKeyHex()), Value: value}, nil
	})
}

func (c *KeyCache) get(pubKeyHex string) (record, bool, error) {
	obj, found, err := c.db.Get(keysPrefix, []byte(pubKeyHex))
	if err != nil {
		return record{}, false, errors.Wrap(err, "failed to read cache record")
	}
	if !found {
		return record{}, false, nil
	}
	var rec record
	if err := json.Unmarshal(obj.Value, &rec); err != nil {
		return record{}, false, errors.Wrap(err, "failed to unmarshal cache record")
	}
	return rec, true, nil
}
