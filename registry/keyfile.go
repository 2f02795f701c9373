package registry

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// fileKey is one record of the eth2deposit CLI output format.
type fileKey struct {
	Pubkey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// ParseKeyFile reads a JSON array of proposed deposit data records, as
// produced by the eth2deposit CLI, and normalizes them into the same Key
// shape used for on-chain data. Record order is preserved and the key index
// is assigned from the record's position in the file.
func ParseKeyFile(r io.Reader) ([]Key, error) {
	var records []fileKey
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "failed to decode key file")
	}

	keys := make([]Key, 0, len(records))
	for i, record := range records {
		pubKey, err := decodeHexField(record.Pubkey)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d: bad pubkey", i)
		}
		signature, err := decodeHexField(record.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d: bad signature", i)
		}
		keys = append(keys, Key{
			Index:            uint64(i),
			PublicKey:        pubKey,
			DepositSignature: signature,
		})
	}

	return keys, nil
}

func decodeHexField(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
