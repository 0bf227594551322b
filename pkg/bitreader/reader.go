// Package bitreader implements the positional cursor over an immutable byte
// buffer used to decode the block-file binary format: fixed-width
// little-endian integers, 32-byte hashes, and Bitcoin's CompactSize
// variable-length integer.
package bitreader

import (
	"encoding/binary"
	"fmt"

	"chain-lens/pkg/chainhash"
)

// ErrTruncatedInput is returned (wrapped) whenever a read runs past the end
// of the buffer.
var ErrTruncatedInput = fmt.Errorf("truncated input")

// Reader is a stateful cursor over an immutable byte buffer. It never
// copies the backing buffer; callers that need an owned copy of a sub-slice
// must copy it themselves (see ReadBytes/BytesFrom).
type Reader struct {
	buf []byte
	pos int
}

// New wraps buf in a Reader starting at offset 0. buf is held by reference
// (zero-copy); its lifetime must extend at least as long as the Reader and
// anything derived from its byte slices.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the number of unread bytes remaining in the buffer.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Seek moves the cursor to an absolute offset. It does not validate that
// offset lies within the buffer; the next read will fail with
// ErrTruncatedInput if it doesn't.
func (r *Reader) Seek(offset int) {
	r.pos = offset
}

// Advance moves the cursor forward by n bytes without reading them, failing
// if fewer than n bytes remain. Used to skip the block-file's trailing
// padding bytes.
func (r *Reader) Advance(n int) error {
	if r.Len() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, n, r.Len())
	}
	r.pos += n
	return nil
}

// ReadBytes returns the next n bytes and advances the cursor. The returned
// slice aliases the underlying buffer; callers that retain it beyond the
// decode pass should copy it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d", n)
	}
	if r.Len() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, n, r.Len())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// BytesFrom returns the bytes consumed since offset `start` up to (but not
// including) the current cursor position. Used by the block decoder to
// recover the exact raw bytes of a just-parsed record for rehashing.
func (r *Reader) BytesFrom(start int) []byte {
	return r.buf[start:r.pos]
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16LE reads an unsigned 16-bit little-endian integer.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32LE reads an unsigned 32-bit little-endian integer.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64LE reads an unsigned 64-bit little-endian integer.
func (r *Reader) ReadU64LE() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadHash32 reads 32 raw bytes as a Hash, preserving internal (on-disk)
// byte order.
func (r *Reader) ReadHash32() (chainhash.Hash, error) {
	b, err := r.ReadBytes(32)
	if err != nil {
		return chainhash.Hash{}, err
	}
	var h chainhash.Hash
	copy(h[:], b)
	return h, nil
}

// ErrUnknownCompactSizeMarker is returned by ReadCompactSize if somehow none of
// the four documented cases matched. The four-case switch below is
// exhaustive over a single byte's value, so this is unreachable; it is kept
// as a defensive sentinel per the decode error taxonomy.
var ErrUnknownCompactSizeMarker = fmt.Errorf("unknown compact size marker")

// ReadCompactSize decodes Bitcoin's CompactSize variable-length integer and
// returns the decoded value along with the number of bytes consumed (1, 3,
// 5, or 9), so callers can recompose the original serialization byte-for-byte
// when rehashing a transaction.
func (r *Reader) ReadCompactSize() (uint64, int, error) {
	marker, err := r.ReadU8()
	if err != nil {
		return 0, 0, err
	}
	switch {
	case marker < 0xFD:
		return uint64(marker), 1, nil
	case marker == 0xFD:
		v, err := r.ReadU16LE()
		if err != nil {
			return 0, 0, err
		}
		return uint64(v), 3, nil
	case marker == 0xFE:
		v, err := r.ReadU32LE()
		if err != nil {
			return 0, 0, err
		}
		return uint64(v), 5, nil
	case marker == 0xFF:
		v, err := r.ReadU64LE()
		if err != nil {
			return 0, 0, err
		}
		return v, 9, nil
	default:
		return 0, 0, ErrUnknownCompactSizeMarker
	}
}
