package token

import "github.com/iov-one/suitdrop/errors"

// ErrInsufficientFunds is returned when a holder cannot cover a transfer.
var ErrInsufficientFunds = errors.Register(1300, "insufficient funds")
