package nft

import "github.com/iov-one/suitdrop/errors"

// ErrInvalidTokenID is returned for a token id that cannot be stored.
var ErrInvalidTokenID = errors.Register(1400, "invalid token id")
