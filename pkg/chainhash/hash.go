// Package chainhash provides the 32-byte hash type shared by every entity
// in the chain graph, plus the internal/display byte-order conversions
// described by the block-file format.
package chainhash

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Hash is a 32-byte double-SHA256 digest stored in internal (little-endian,
// on-disk) byte order. String returns the conventional display (big-endian)
// hex form; ParseDisplayHex is its inverse.
type Hash = chainhash.Hash

// Zero is the sentinel hash: 32 zero bytes, the parent of the genesis block.
var Zero Hash

// DoubleSHA256 computes SHA256(SHA256(data)), used for both txids and
// block header hashes. The result is already in internal byte order; it is
// not reversed.
func DoubleSHA256(data []byte) Hash {
	return chainhash.DoubleHashH(data)
}

// ParseDisplayHex parses a 64-character lowercase display-order (big-endian)
// hex string into an internal-order Hash. It rejects anything that isn't
// exactly 64 lowercase hex characters, matching the boundary validation
// required of every query accessor.
func ParseDisplayHex(s string) (Hash, error) {
	if len(s) != 64 {
		return Hash{}, fmt.Errorf("%w: expected 64 hex characters, got %d", ErrMalformed, len(s))
	}
	for _, c := range s {
		if !isLowerHexDigit(c) {
			return Hash{}, fmt.Errorf("%w: non-hex or uppercase character %q", ErrMalformed, c)
		}
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return *h, nil
}

func isLowerHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// DisplayHex returns the conventional big-endian hex form of h.
func DisplayHex(h Hash) string {
	return h.String()
}
