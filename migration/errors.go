package migration

import (
	"github.com/iov-one/suitdrop/errors"
)

// ErrContractMismatch is returned when a migration is attempted using the
// code of a different contract. Migration reserves 1510~1519 error codes.
var ErrContractMismatch = errors.Register(1510, "contract mismatch")
