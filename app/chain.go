package app

import (
	"reflect"

	"github.com/iov-one/suitdrop"
)

// Decorators is a stack of decorators waiting for the final handler.
type Decorators struct {
	chain []suitdrop.Decorator
}

// ChainDecorators returns a stack of decorators. Once completed with a
// handler, usually a Router, the first decorator is executed first:
//
//	app.ChainDecorators(
//	  utils.NewLogging(),
//	  utils.NewRecovery(),
//	).WithHandler(router)
//
// Nil decorators are skipped, so that optional ones can be declared inline.
func ChainDecorators(chain ...suitdrop.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a stack with more decorators appended.
func (d Decorators) Chain(chain ...suitdrop.Decorator) Decorators {
	res := make([]suitdrop.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(res, d.chain)
	for _, dec := range chain {
		if !isNil(dec) {
			res = append(res, dec)
		}
	}
	return Decorators{chain: res}
}

func isNil(d suitdrop.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns a handler that passes every message through the
// whole stack before it reaches h.
func (d Decorators) WithHandler(h suitdrop.Handler) suitdrop.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated calls a decorator with the rest of the stack as next.
type decorated struct {
	dec  suitdrop.Decorator
	next suitdrop.Handler
}

var _ suitdrop.Handler = decorated{}

func (s decorated) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
