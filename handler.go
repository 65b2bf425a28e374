package suitdrop

import (
	"encoding/json"

	"github.com/iov-one/suitdrop/errors"
)

// Handler processes one or more message types of a contract, for example
// "claim" or "register_merkle_root".
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a message against the state without persisting
// anything.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a message.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before and after the next step of a handler chain.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options holds the genesis sections, keyed by name.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "option %q: %s", key, err)
	}
	return nil
}

// Initializer implementations actually handle the parsing of the genesis
// options into the initial state of the store.
type Initializer interface {
	FromGenesis(opts Options, kv KVStore) error
}
