package query

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a query-time failure. Both kinds are recoverable and
// local: frontends translate them into a user-visible 4xx response (see
// pkg/block for the separate, fatal ingest-error taxonomy).
type ErrorKind int

const (
	// NotFound means a well-formed hash doesn't resolve to any known
	// block or transaction.
	NotFound ErrorKind = iota
	// MalformedHash means the input string isn't a well-formed
	// 64-character lowercase hex hash.
	MalformedHash
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case MalformedHash:
		return "MalformedHash"
	default:
		return "Unknown"
	}
}

// QueryError reports a recoverable query failure with the hash that
// triggered it and the kind of failure, so a frontend can branch on Kind
// without depending on Error()'s text.
type QueryError struct {
	Hash string
	Kind ErrorKind
	Err  error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Hash, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Hash)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a QueryError with the same Kind, so callers
// can write errors.Is(err, &query.QueryError{Kind: query.NotFound}).
func (e *QueryError) Is(target error) bool {
	var other *QueryError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

func newQueryError(kind ErrorKind, hash string, err error) *QueryError {
	return &QueryError{Hash: hash, Kind: kind, Err: err}
}
