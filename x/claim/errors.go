package claim

import "github.com/iov-one/suitdrop/errors"

var (
	ErrInvalidInput       = errors.Register(1100, "Invalid input")
	ErrClaimed            = errors.Register(1101, "Already claimed")
	ErrWrongLength        = errors.Register(1102, "Wrong length")
	ErrInsufficient       = errors.Register(1103, "Insufficient Balance")
	ErrVerificationFailed = errors.Register(1104, "Verification failed")
)
