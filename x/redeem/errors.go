package redeem

import "github.com/iov-one/suitdrop/errors"

var (
	ErrInvalidMaxTokens    = errors.Register(1200, "Invalid max tokens")
	ErrInvalidTokenReplyID = errors.Register(1201, "Invalid token reply id")
	ErrCw721AlreadyLinked  = errors.Register(1202, "Cw721 already linked")
	ErrUninitialized       = errors.Register(1203, "Uninitialized")
	ErrMaxTokensExceed     = errors.Register(1204, "Max tokens exceed")
)
