package block

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an ingest-time decode failure. All are fatal for the
// ingest run; none are recoverable locally (see pkg/query for the separate,
// recoverable query-error taxonomy).
type ErrorKind int

const (
	// TruncatedInput means a read ran past the end of the buffer.
	TruncatedInput ErrorKind = iota
	// BadMagic means a block record's leading 4 bytes didn't match the
	// expected network magic.
	BadMagic
	// SizeMismatch means the bytes consumed parsing header+transactions
	// didn't match the record's declared block_size.
	SizeMismatch
	// MerkleMismatch means the computed Merkle root over the ordered
	// txids didn't match the header's merkle_root field.
	MerkleMismatch
	// UnknownCompactSizeMarker is unreachable given CompactSize's
	// four-case switch; retained as a defensive sentinel.
	UnknownCompactSizeMarker
)

func (k ErrorKind) String() string {
	switch k {
	case TruncatedInput:
		return "TruncatedInput"
	case BadMagic:
		return "BadMagic"
	case SizeMismatch:
		return "SizeMismatch"
	case MerkleMismatch:
		return "MerkleMismatch"
	case UnknownCompactSizeMarker:
		return "UnknownCompactSizeMarker"
	default:
		return "Unknown"
	}
}

// DecodeError reports a fatal ingest failure with enough context to locate
// it: the source file name, the byte offset within that file, and the kind
// of corruption detected.
type DecodeError struct {
	File   string
	Offset int
	Kind   ErrorKind
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", e.File, e.Offset, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Offset, e.Kind)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DecodeError with the same Kind, so callers
// can write errors.Is(err, &block.DecodeError{Kind: block.BadMagic}).
func (e *DecodeError) Is(target error) bool {
	var other *DecodeError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

func newDecodeError(file string, offset int, kind ErrorKind, err error) *DecodeError {
	return &DecodeError{File: file, Offset: offset, Kind: kind, Err: err}
}
