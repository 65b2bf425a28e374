package utils

import (
	"github.com/iov-one/suitdrop"
)

// writeHandler writes a key value pair and returns configured error.
type writeHandler struct {
	key, value []byte
	err        error
}

func (h writeHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &suitdrop.DeliverResult{}, h.err
}

// panicHandler always panics with given value.
type panicHandler struct {
	val interface{}
}

func (h panicHandler) Check(suitdrop.Context, suitdrop.KVStore, suitdrop.Tx) (*suitdrop.CheckResult, error) {
	panic(h.val)
}

func (h panicHandler) Deliver(suitdrop.Context, suitdrop.KVStore, suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	panic(h.val)
}
