package registry

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testRoster() []Operator {
	return []Operator{
		{
			ID:   0,
			Name: "Operator Zero",
			Keys: []Key{
				{Index: 0, PublicKey: []byte{0x01}, Used: true},
				{Index: 1, PublicKey: []byte{0x02}},
				{Index: 2, PublicKey: []byte{0x03}},
			},
		},
		{
			ID:   1,
			Name: "Operator One",
			Keys: []Key{
				{Index: 0, PublicKey: []byte{0x04}},
			},
		},
		{
			ID:   2,
			Name: "Operator Two",
		},
	}
}

func TestPartition(t *testing.T) {
	operators := testRoster()

	used, unused := Partition(operators, func(k Key) bool { return k.Used })

	require.Len(t, used, len(operators))
	require.Len(t, unused, len(operators))

	// Metadata is preserved in both outputs.
	for i := range operators {
		require.Equal(t, operators[i].ID, used[i].ID)
		require.Equal(t, operators[i].Name, used[i].Name)
		require.Equal(t, operators[i].ID, unused[i].ID)
	}

	require.Len(t, used[0].Keys, 1)
	require.Len(t, unused[0].Keys, 2)
	require.Equal(t, uint64(1), unused[0].Keys[0].Index)
	require.Equal(t, uint64(2), unused[0].Keys[1].Index)

	// Every input key lands in exactly one output.
	require.Equal(t, CountKeys(operators), CountKeys(used)+CountKeys(unused))
}

func TestMergeOrderPreserving(t *testing.T) {
	operators := testRoster()
	used, unused := Partition(operators, func(k Key) bool { return k.Used })

	merged, err := Merge(used, unused)
	require.NoError(t, err)
	require.Len(t, merged, len(operators))
	require.Equal(t, CountKeys(operators), CountKeys(merged))

	// For every operator position: used keys first, then unused keys, each
	// in original order.
	require.Equal(t, []uint64{0, 1, 2}, keyIndexes(merged[0].Keys))
	require.True(t, merged[0].Keys[0].Used)
}

func TestMergeAssociative(t *testing.T) {
	a := []Operator{{ID: 7, Keys: []Key{{Index: 0}}}}
	b := []Operator{{ID: 7, Keys: []Key{{Index: 1}, {Index: 2}}}}
	c := []Operator{{ID: 7, Keys: []Key{{Index: 3}}}}

	all, err := Merge(a, b, c)
	require.NoError(t, err)

	ab, err := Merge(a, b)
	require.NoError(t, err)
	abc, err := Merge(ab, c)
	require.NoError(t, err)

	require.Equal(t, keyIndexes(all[0].Keys), keyIndexes(abc[0].Keys))
	require.Equal(t, []uint64{0, 1, 2, 3}, keyIndexes(all[0].Keys))
}

func TestMergeMismatch(t *testing.T) {
	t.Run("operator count", func(t *testing.T) {
		_, err := Merge(
			[]Operator{{ID: 0}, {ID: 1}},
			[]Operator{{ID: 0}},
		)
		require.True(t, errors.Is(err, ErrRosterMismatch))
	})

	t.Run("operator id", func(t *testing.T) {
		_, err := Merge(
			[]Operator{{ID: 0}, {ID: 1}},
			[]Operator{{ID: 0}, {ID: 2}},
		)
		require.True(t, errors.Is(err, ErrRosterMismatch))
	})
}

func TestMergeEmpty(t *testing.T) {
	merged, err := Merge()
	require.NoError(t, err)
	require.Nil(t, merged)
}

func TestCountKeys(t *testing.T) {
	require.Equal(t, 4, CountKeys(testRoster()))
	require.Equal(t, 0, CountKeys(nil))
}

func keyIndexes(keys []Key) []uint64 {
	indexes := make([]uint64, 0, len(keys))
	for _, key := range keys {
		indexes = append(indexes, key.Index)
	}
	return indexes
}
