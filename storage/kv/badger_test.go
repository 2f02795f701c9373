package kv

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/storage/basedb"
)

func setupDB(t *testing.T) *BadgerDB {
	db, err := New(logging.TestLogger(t), basedb.Options{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestSetGet(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Set([]byte("prefix/"), []byte("key"), []byte("value")))

	obj, found, err := db.Get([]byte("prefix/"), []byte("key"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("value"), obj.Value)

	_, found, err = db.Get([]byte("prefix/"), []byte("missing"))
	require.NoError(t, err)
	require.False(t, found)

	// Same key under a different prefix is a different record.
	_, found, err = db.Get([]byte("other/"), []byte("key"))
	require.NoError(t, err)
	require.False(t, found)
}

func TestSetOverwrites(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Set([]byte("p/"), []byte("k"), []byte("old")))
	require.NoError(t, db.Set([]byte("p/"), []byte("k"), []byte("new")))

	obj, found, err := db.Get([]byte("p/"), []byte("k"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("new"), obj.Value)
}

func TestSetManyGetAll(t *testing.T) {
	db := setupDB(t)
	prefix := []byte("keys/")

	err := db.SetMany(prefix, 10, func(i int) (basedb.Obj, error) {
		return basedb.Obj{
			Key:   []byte(fmt.Sprintf("key-%d", i)),
			Value: []byte(fmt.Sprintf("value-%d", i)),
		}, nil
	})
	require.NoError(t, err)

	seen := map[string]string{}
	err = db.GetAll(prefix, func(i int, obj basedb.Obj) error {
		seen[string(obj.Key)] = string(obj.Value)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, seen, 10)
	for i := 0; i < 10; i++ {
		require.Equal(t, fmt.Sprintf("value-%d", i), seen[fmt.Sprintf("key-%d", i)])
	}
}

func TestSetManyAborts(t *testing.T) {
	db := setupDB(t)
	prefix := []byte("keys/")

	err := db.SetMany(prefix, 5, func(i int) (basedb.Obj, error) {
		if i == 3 {
			return basedb.Obj{}, fmt.Errorf("generator failed")
		}
		return basedb.Obj{Key: []byte{byte(i)}, Value: []byte{byte(i)}}, nil
	})
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Set([]byte("p/"), []byte("k"), []byte("v")))
	require.NoError(t, db.Delete([]byte("p/"), []byte("k")))

	_, found, err := db.Get([]byte("p/"), []byte("k"))
	require.NoError(t, err)
	require.False(t, found)

	// Deleting an absent key is not an error.
	require.NoError(t, db.Delete([]byte("p/"), []byte("k")))
}

func TestCountPrefix(t *testing.T) {
	db := setupDB(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, db.Set([]byte("a/"), []byte{byte(i)}, []byte("v")))
	}
	require.NoError(t, db.Set([]byte("b/"), []byte("x"), []byte("v")))

	count, err := db.CountPrefix([]byte("a/"))
	require.NoError(t, err)
	require.Equal(t, int64(4), count)

	count, err = db.CountPrefix([]byte("b/"))
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = db.CountPrefix([]byte("c/"))
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDropPrefix(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Set([]byte("a/"), []byte("k"), []byte("v")))
	require.NoError(t, db.Set([]byte("b/"), []byte("k"), []byte("v")))

	require.NoError(t, db.DropPrefix([]byte("a/")))

	count, err := db.CountPrefix([]byte("a/"))
	require.NoError(t, err)
	require.Zero(t, count)

	_, found, err := db.Get([]byte("b/"), []byte("k"))
	require.NoError(t, err)
	require.True(t, found)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := t.TempDir()
	logger := logging.TestLogger(t)

	db, err := New(logger, basedb.Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, db.Set([]byte("p/"), []byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	db, err = New(logger, basedb.Options{Path: path})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	obj, found, err := db.Get([]byte("p/"), []byte("k"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("v"), obj.Value)
}

func TestGC(t *testing.T) {
	db := setupDB(t)

	for i := 0; i < 100; i++ {
		require.NoError(t, db.Set([]byte("p/"), []byte{byte(i)}, make([]byte, 1024)))
	}

	require.NoError(t, db.QuickGC(db.ctx))
	require.NoError(t, db.FullGC(db.ctx))

	count, err := db.CountPrefix([]byte("p/"))
	require.NoError(t, err)
	require.Equal(t, int64(100), count)
}

func TestCloseStopsGCWorker(t *testing.T) {
	db, err := New(logging.TestLogger(t), basedb.Options{
		Path:       t.TempDir(),
		GCInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, db.Close())
}
