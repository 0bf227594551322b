package chainhash

import "errors"

// ErrMalformed is the sentinel wrapped by ParseDisplayHex when the input is
// not a well-formed 64-character lowercase hex hash.
var ErrMalformed = errors.New("malformed hash")
