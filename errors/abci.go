package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is the code reported when a message was processed
	// without an error.
	SuccessABCICode = 0

	// Errors that do not carry an ABCI code are reported with the internal
	// code and a generic log instead of their real message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log that should be returned to a client for
// the given error. Any error that does not provide ABCICode information is
// reported as an internal error with code 1. Unless debug is set, the message
// of an internal error is replaced with a generic text.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}

	if code := abciCode(err); code != internalABCICode {
		if debug {
			// %+v may produce a stack trace.
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalABCICode, fmt.Sprintf("%+v", err)
	}
	return internalABCICode, internalABCILog
}

type coder interface {
	ABCICode() uint32
}

// abciCode unwraps the given error until an ABCI code provider is found. The
// internal code is returned when there is none.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}
