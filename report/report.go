// Package report renders audit results to the console.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aquasecurity/table"
	"go.uber.org/zap"

	"github.com/lidofinance/lido-node-operator-key-checker-cli/logging"
	"github.com/lidofinance/lido-node-operator-key-checker-cli/registry"
)

// Summary aggregates one run's counters.
type Summary struct {
	Operators         int
	TotalKeys         int
	UsedKeys          int
	CachedKeys        int
	ValidatedKeys     int
	InvalidSignatures int
	DuplicateKeys     int
}

// Reporter writes human-readable audit results.
type Reporter struct {
	logger *zap.Logger
	out    io.Writer
}

func New(logger *zap.Logger, out io.Writer) *Reporter {
	return &Reporter{
		logger: logger.Named(logging.NameReporter),
		out:    out,
	}
}

// PrintSummary renders the run counters as a table.
func (r *Reporter) PrintSummary(s Summary) {
	t := table.New(r.out)
	t.SetHeaders("Operators", "Total keys", "Used", "Cache hits", "Validated", "Invalid signatures", "Duplicates")
	t.AddRow(
		strconv.Itoa(s.Operators),
		strconv.Itoa(s.TotalKeys),
		strconv.Itoa(s.UsedKeys),
		strconv.Itoa(s.CachedKeys),
		strconv.Itoa(s.ValidatedKeys),
		strconv.Itoa(s.InvalidSignatures),
		strconv.Itoa(s.DuplicateKeys),
	)
	t.Render()
}

// PrintInvalidSignatures reports every unused key whose deposit signature
// failed verification and returns how many were found. Keys already used in
// a deposit are skipped since they were never re-validated.
func (r *Reporter) PrintInvalidSignatures(operators []registry.Operator) int {
	count := 0
	t := table.New(r.out)
	t.SetHeaders("Operator", "ID", "Approved", "Key index", "Public key")

	for i := range operators {
		operator := &operators[i]
		for j := range operator.Keys {
			key := &operator.Keys[j]
			if key.Used || key.ValidSignature {
				continue
			}
			count++
			t.AddRow(
				operator.Name,
				strconv.FormatUint(operator.ID, 10),
				strconv.FormatBool(operator.Approved()),
				strconv.FormatUint(key.Index, 10),
				key.PublicKeyHex(),
			)
		}
	}

	if count == 0 {
		r.logger.Info("no invalid signatures found")
		return 0
	}

	r.logger.Warn("invalid signatures found", zap.Int("count", count))
	t.Render()
	return count
}

// PrintDuplicates reports every key flagged as a duplicate together with
// the matches recorded against it, and returns how many keys were flagged.
func (r *Reporter) PrintDuplicates(operators []registry.Operator) int {
	count := 0
	for i := range operators {
		operator := &operators[i]
		for j := range operator.Keys {
			key := &operator.Keys[j]
			if !key.Duplicate {
				continue
			}
			count++
			r.logger.Warn("duplicate key",
				zap.String("pubKey", key.PublicKeyHex()),
				zap.String("operator", operator.Name),
				zap.Uint64("operatorId", operator.ID),
				zap.Uint64("keyIndex", key.Index))
			r.printMatches(key.Duplicates)
		}
	}

	if count == 0 {
		r.logger.Info("no duplicate keys found")
	}
	return count
}

// PrintFileKeys reports validation and duplicate findings for keys supplied
// by file, and returns (invalid, duplicate) counts.
func (r *Reporter) PrintFileKeys(keys []registry.Key) (int, int) {
	invalid := 0
	duplicates := 0

	for i := range keys {
		key := &keys[i]
		if !key.ValidSignature {
			invalid++
			r.logger.Warn("invalid signature", zap.String("pubKey", key.PublicKeyHex()))
		}
		if key.Duplicate {
			duplicates++
			r.logger.Warn("key already registered on-chain", zap.String("pubKey", key.PublicKeyHex()))
			r.printMatches(key.Duplicates)
		}
	}

	if invalid == 0 {
		r.logger.Info("no invalid signatures found")
	}
	if duplicates == 0 {
		r.logger.Info("no duplicate keys found")
	}
	return invalid, duplicates
}

func (r *Reporter) printMatches(matches []registry.DuplicateMatch) {
	for _, match := range matches {
		fmt.Fprintf(r.out, "- %s (#%d) key #%d - OP Active: %t, OP Approved: %t, Key Used: %t\n",
			match.OperatorName, match.OperatorID, match.KeyIndex,
			match.OperatorActive, match.Approved(), match.KeyUsed)
	}
}
