package runtime

import "github.com/iov-one/suitdrop/errors"

var (
	ErrRecursion   = errors.Register(1500, "max effect depth exceeded")
	ErrUnknownCode = errors.Register(1501, "unknown code")
	ErrNoBlock     = errors.Register(1502, "no block in progress")
)
