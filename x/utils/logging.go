package utils

import (
	"time"

	"github.com/iov-one/suitdrop"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes a log entry for every handled message. Failures are
// logged as errors, delivered messages at info and checked messages at debug
// level. The entry message is the handler result log.
type Logging struct{}

var _ suitdrop.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Checker) (*suitdrop.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := msgLogger(ctx, tx, start)
	if err != nil {
		logger.Error("", "err", err)
		return res, err
	}
	logger.Debug(res.Log)
	return res, nil
}

func (Logging) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Deliverer) (*suitdrop.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := msgLogger(ctx, tx, start)
	if err != nil {
		logger.Error("", "err", err)
		return res, err
	}
	logger.Info(res.Log, "effects", len(res.Effects))
	return res, nil
}

// msgLogger returns the context logger with the message path and the time
// elapsed since start, in microseconds.
func msgLogger(ctx suitdrop.Context, tx suitdrop.Tx, start time.Time) log.Logger {
	return suitdrop.GetLogger(ctx).With(
		"path", suitdrop.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond)
}
