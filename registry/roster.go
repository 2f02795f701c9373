package registry

import (
	"github.com/pkg/errors"
)

// ErrRosterMismatch is returned by Merge when input rosters disagree on
// operator count or ordering. It indicates a reconciliation bug rather than
// bad user input, so callers treat it as fatal.
var ErrRosterMismatch = errors.New("operator rosters are misaligned")

// Partition splits every operator's key list into two parallel rosters by
// the given predicate. Operator metadata and per-operator key order are
// preserved in both outputs.
func Partition(operators []Operator, pred func(Key) bool) (matching []Operator, rest []Operator) {
	matching = make([]Operator, 0, len(operators))
	rest = make([]Operator, 0, len(operators))

	for _, operator := range operators {
		var matched, unmatched []Key
		for _, key := range operator.Keys {
			if pred(key) {
				matched = append(matched, key)
			} else {
				unmatched = append(unmatched, key)
			}
		}
		matching = append(matching, operator.WithKeys(matched))
		rest = append(rest, operator.WithKeys(unmatched))
	}

	return matching, rest
}

// Merge recombines rosters previously produced by Partition into a single
// roster. All inputs must be aligned: same operator count and the same
// operator ID at every position. For each operator position the output key
// list is the concatenation of that operator's keys across all inputs, in
// input order.
func Merge(rosters ...[]Operator) ([]Operator, error) {
	if len(rosters) == 0 {
		return nil, nil
	}

	first := rosters[0]
	for _, roster := range rosters[1:] {
		if len(roster) != len(first) {
			return nil, errors.Wrapf(ErrRosterMismatch, "operator count %d != %d", len(roster), len(first))
		}
		for i := range roster {
			if roster[i].ID != first[i].ID {
				return nil, errors.Wrapf(ErrRosterMismatch, "operator id %d != %d at position %d", roster[i].ID, first[i].ID, i)
			}
		}
	}

	merged := make([]Operator, 0, len(first))
	for i, operator := range first {
		var keys []Key
		for _, roster := range rosters {
			keys = append(keys, roster[i].Keys...)
		}
		merged = append(merged, operator.WithKeys(keys))
	}

	return merged, nil
}

// CountKeys returns the total number of keys across all operators.
func CountKeys(operators []Operator) int {
	count := 0
	for _, operator := range operators {
		count += len(operator.Keys)
	}
	return count
}
