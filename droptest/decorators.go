package droptest

import "github.com/iov-one/suitdrop"

// Decorator counts its calls and passes them to the next handler, unless
// CheckErr or DeliverErr is set, in which case that error is returned
// instead. Calls are counted in both cases.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks   int
	delivers int
}

var _ suitdrop.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Checker) (*suitdrop.CheckResult, error) {
	d.checks++
	if err := d.CheckErr; err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Deliverer) (*suitdrop.DeliverResult, error) {
	d.delivers++
	if err := d.DeliverErr; err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }
func (d *Decorator) CallCount() int        { return d.checks + d.delivers }

// Decorate wraps h with d.
func Decorate(h suitdrop.Handler, d suitdrop.Decorator) suitdrop.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next suitdrop.Handler
	dec  suitdrop.Decorator
}

func (d decorated) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
