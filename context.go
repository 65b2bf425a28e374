package suitdrop

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the suitdrop package

const (
	contextKeyBlockInfo contextKey = iota
	contextKeyLogger
	contextKeyContract
	contextKeyQuerier
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

// WithBlockInfo sets the block information for the context.
// It panics if the block information was already set.
func WithBlockInfo(ctx Context, info BlockInfo) Context {
	if _, ok := GetBlockInfo(ctx); ok {
		panic("block info already set")
	}
	return context.WithValue(ctx, contextKeyBlockInfo, info)
}

// GetBlockInfo returns the block information of the currently processed
// block, if set.
func GetBlockInfo(ctx Context) (BlockInfo, bool) {
	info, ok := ctx.Value(contextKeyBlockInfo).(BlockInfo)
	return info, ok
}

// GetHeight returns the current block height, 0 if not set.
func GetHeight(ctx Context) int64 {
	info, _ := GetBlockInfo(ctx)
	return info.Height()
}

// BlockTime returns current block wall clock time as declared in the header.
// An error is returned if the block time is not present in the context.
func BlockTime(ctx Context) (UnixTime, error) {
	info, ok := GetBlockInfo(ctx)
	if !ok || info.BlockTime().IsZero() {
		return 0, errNoBlockTime
	}
	return info.UnixTime(), nil
}

// WithLogger sets the logger for this context. The logger can be replaced
// at any level, so that each layer adds its own keyvals.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// WithContract sets the address of the contract instance that is currently
// executing. Nested executions overwrite the value.
func WithContract(ctx Context, addr Address) Context {
	return context.WithValue(ctx, contextKeyContract, addr)
}

// GetContract returns the address of the executing contract instance.
func GetContract(ctx Context) (Address, bool) {
	addr, ok := ctx.Value(contextKeyContract).(Address)
	return addr, ok
}

// WithQuerier sets the cross contract querier.
func WithQuerier(ctx Context, q Querier) Context {
	return context.WithValue(ctx, contextKeyQuerier, q)
}

// GetQuerier returns the cross contract querier, if set.
func GetQuerier(ctx Context) (Querier, bool) {
	q, ok := ctx.Value(contextKeyQuerier).(Querier)
	return q, ok
}
