package utils

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
)

// Recovery converts a panic of the handler into an ErrPanic error, so that
// a broken contract fails the message instead of the whole process.
type Recovery struct{}

var _ suitdrop.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Checker) (res *suitdrop.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Deliverer) (res *suitdrop.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
