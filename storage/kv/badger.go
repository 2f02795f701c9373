package kv

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/storage/basedb"
)

var _ basedb.Database = &BadgerDB{}
var _ basedb.GarbageCollector = &BadgerDB{}

// BadgerDB is a basedb.Database implementation on top of Badger v4.
type BadgerDB struct {
	logger *zap.Logger
	db     *badger.DB

	ctx    context.Context
	cancel context.CancelFunc

	wg sync.WaitGroup

	// gcMutex ensures that only one GC cycle runs at a time.
	gcMutex sync.Mutex
}

// New opens (creating if absent) a Badger database at options.Path.
func New(logger *zap.Logger, options basedb.Options) (*BadgerDB, error) {
	opt := badger.DefaultOptions(options.Path)
	opt.Logger = newLogger(logger.Named(logging.NameBadgerDBLog))

	db, err := badger.Open(opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger")
	}

	parentCtx := options.Ctx
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)

	badgerDB := &BadgerDB{
		logger: logger,
		db:     db,
		ctx:    ctx,
		cancel: cancel,
	}

	if options.GCInterval > 0 {
		badgerDB.wg.Add(1)
		go badgerDB.periodicallyCollectGarbage(options.GCInterval)
	}

	return badgerDB, nil
}

// Set saves value with key to storage.
func (b *BadgerDB) Set(prefix []byte, key []byte, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(append(prefix, key...), value)
	})
}

// SetMany saves n key/value pairs produced by next in a single transaction.
func (b *BadgerDB) SetMany(prefix []byte, n int, next func(int) (basedb.Obj, error)) error {
	wb := b.db.NewWriteBatch()
	for i := 0; i < n; i++ {
		item, err := next(i)
		if err != nil {
			wb.Cancel()
			return err
		}
		if err := wb.Set(append(prefix, item.Key...), item.Value); err != nil {
			wb.Cancel()
			return err
		}
	}
	return wb.Flush()
}

// Get returns the value for the specified key, reporting whether it was found.
func (b *BadgerDB) Get(prefix []byte, key []byte) (basedb.Obj, bool, error) {
	var resValue []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(append(prefix, key...))
		if err != nil {
			return err
		}
		resValue, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return basedb.Obj{}, false, nil
	}
	if err != nil {
		return basedb.Obj{}, true, err
	}
	return basedb.Obj{
		Key:   key,
		Value: resValue,
	}, true, nil
}

// GetAll iterates over every key under the prefix, invoking handler with the
// trimmed key and a copy of the value.
func (b *BadgerDB) GetAll(prefix []byte, handler func(int, basedb.Obj) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.Prefix = prefix
		it := txn.NewIterator(opt)
		defer it.Close()

		i := 0
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			obj := basedb.Obj{
				Key:   bytes.TrimPrefix(item.KeyCopy(nil), prefix),
				Value: val,
			}
			if err := handler(i, obj); err != nil {
				return err
			}
			i++
		}
		return nil
	})
}

// Delete removes the specified key from storage.
func (b *BadgerDB) Delete(prefix []byte, key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(append(prefix, key...))
	})
}

// CountPrefix returns the number of keys under the prefix.
func (b *BadgerDB) CountPrefix(prefix []byte) (int64, error) {
	var count int64
	err := b.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.Prefix = prefix
		opt.PrefetchValues = false
		it := txn.NewIterator(opt)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// DropPrefix deletes every key under the prefix.
func (b *BadgerDB) DropPrefix(prefix []byte) error {
	return b.db.DropPrefix(prefix)
}

// Close stops background workers and closes the underlying database. Callers
// must close the database on every exit path.
func (b *BadgerDB) Close() error {
	b.cancel()
	b.wg.Wait()
	if err := b.db.Close(); err != nil {
		b.logger.Error("failed to close badger", zap.Error(err))
		return errors.Wrap(err, "failed to close badger")
	}
	return nil
}

// badgerLogger routes badger's internal logging into zap.
type badgerLogger struct {
	logger *zap.Logger
}

func newLogger(l *zap.Logger) badger.Logger {
	return &badgerLogger{logger: l}
}

func (bl *badgerLogger) Errorf(s string, i ...interface{}) {
	bl.logger.Error(fmt.Sprintf(s, i...))
}

func (bl *badgerLogger) Warningf(s string, i ...interface{}) {
	bl.logger.Warn(fmt.Sprintf(s, i...))
}

func (bl *badgerLogger) Infof(s string, i ...interface{}) {
	bl.logger.Debug(fmt.Sprintf(s, i...))
}

func (bl *badgerLogger) Debugf(s string, i ...interface{}) {
	bl.logger.Debug(fmt.Sprintf(s, i...))
}
