package utils

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache is
// written only if the handler succeeds. Stores that cannot be cached are
// passed through unchanged.
//
// A savepoint is disabled until OnCheck or OnDeliver is called.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ suitdrop.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy of the savepoint that is active for Check.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver returns a copy of the savepoint that is active for Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Checker) (*suitdrop.CheckResult, error) {
	var res *suitdrop.CheckResult
	err := withSavepoint(s.check, db, func(db suitdrop.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Deliverer) (*suitdrop.DeliverResult, error) {
	var res *suitdrop.DeliverResult
	err := withSavepoint(s.deliver, db, func(db suitdrop.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func withSavepoint(active bool, db suitdrop.KVStore, fn func(suitdrop.KVStore) error) error {
	cdb, ok := db.(suitdrop.CacheableKVStore)
	if !active || !ok {
		return fn(db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
