package registry

import (
	"bytes"
)

// FindDuplicates scans every operator's key list for entries whose public
// key bytes equal the probe key's bytes. A candidate is skipped only when it
// is the exact originating registration slot, i.e. the candidate operator ID
// and key index both equal the probe's. Passing a nil original compares the
// probe against everything with no exclusion, which is the mode used for
// externally supplied keys that are not registered on-chain yet.
func FindDuplicates(operators []Operator, original *Operator, key Key) []DuplicateMatch {
	var matches []DuplicateMatch

	for i := range operators {
		candidate := &operators[i]
		for j := range candidate.Keys {
			candidateKey := &candidate.Keys[j]
			if !bytes.Equal(key.PublicKey, candidateKey.PublicKey) {
				continue
			}
			if original != nil && candidate.ID == original.ID && candidateKey.Index == key.Index {
				continue
			}
			matches = append(matches, DuplicateMatch{
				OperatorID:     candidate.ID,
				OperatorName:   candidate.Name,
				OperatorActive: candidate.Active,
				StakingLimit:   candidate.StakingLimit,
				KeyIndex:       candidateKey.Index,
				KeyUsed:        candidateKey.Used,
			})
		}
	}

	return matches
}

// FindAllDuplicates probes every key of the roster against the whole roster
// and annotates it with its matches. Matches are reported in roster scan
// order and symmetrically: if operator A's key matches operator B's, both
// keys end up flagged against each other.
func FindAllDuplicates(operators []Operator) {
	for i := range operators {
		operator := &operators[i]
		for j := range operator.Keys {
			key := &operator.Keys[j]
			matches := FindDuplicates(operators, operator, *key)
			key.Duplicate = len(matches) > 0
			key.Duplicates = matches
		}
	}
}
