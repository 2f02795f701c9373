package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	pubKeyA = []byte{0xaa, 0xaa, 0xaa}
	pubKeyB = []byte{0xbb, 0xbb, 0xbb}
)

func TestFindDuplicatesExcludesOnlyOriginatingSlot(t *testing.T) {
	// The same key registered twice by the same operator is still a
	// duplicate: only the exact (operator, index) slot is excluded.
	operators := []Operator{
		{
			ID:   1,
			Name: "Operator One",
			Keys: []Key{
				{Index: 0, PublicKey: pubKeyA},
				{Index: 1, PublicKey: pubKeyA},
			},
		},
	}

	matches := FindDuplicates(operators, &operators[0], operators[0].Keys[0])
	require.Len(t, matches, 1)
	require.Equal(t, uint64(1), matches[0].OperatorID)
	require.Equal(t, uint64(1), matches[0].KeyIndex)
}

func TestFindDuplicatesSentinelMode(t *testing.T) {
	operators := []Operator{
		{ID: 0, Name: "Operator Zero", Keys: []Key{{Index: 0, PublicKey: pubKeyA, Used: true}}},
		{ID: 1, Name: "Operator One", Keys: []Key{{Index: 0, PublicKey: pubKeyB}}},
	}

	// A not-yet-registered external key matching an on-chain slot is
	// reported with no self-exclusion.
	probe := Key{Index: 0, PublicKey: pubKeyA}
	matches := FindDuplicates(operators, nil, probe)
	require.Len(t, matches, 1)
	require.Equal(t, "Operator Zero", matches[0].OperatorName)
	require.True(t, matches[0].KeyUsed)

	require.Empty(t, FindDuplicates(operators, nil, Key{PublicKey: []byte{0xcc}}))
}

func TestFindAllDuplicatesSymmetric(t *testing.T) {
	operators := []Operator{
		{ID: 0, Name: "Operator Zero", StakingLimit: 10, Keys: []Key{{Index: 0, PublicKey: pubKeyA}}},
		{ID: 1, Name: "Operator One", Keys: []Key{{Index: 0, PublicKey: pubKeyA}}},
	}

	FindAllDuplicates(operators)

	// Both directions are surfaced: A→B and B→A.
	require.True(t, operators[0].Keys[0].Duplicate)
	require.True(t, operators[1].Keys[0].Duplicate)

	require.Len(t, operators[0].Keys[0].Duplicates, 1)
	require.Equal(t, "Operator One", operators[0].Keys[0].Duplicates[0].OperatorName)

	require.Len(t, operators[1].Keys[0].Duplicates, 1)
	require.Equal(t, "Operator Zero", operators[1].Keys[0].Duplicates[0].OperatorName)
	require.Equal(t, uint64(10), operators[1].Keys[0].Duplicates[0].StakingLimit)
	require.True(t, operators[1].Keys[0].Duplicates[0].Approved())
}

func TestFindAllDuplicatesCleanRoster(t *testing.T) {
	operators := []Operator{
		{ID: 0, Keys: []Key{{Index: 0, PublicKey: pubKeyA}}},
		{ID: 1, Keys: []Key{{Index: 0, PublicKey: pubKeyB}}},
	}

	FindAllDuplicates(operators)

	require.False(t, operators[0].Keys[0].Duplicate)
	require.Empty(t, operators[0].Keys[0].Duplicates)
	require.False(t, operators[1].Keys[0].Duplicate)
}
