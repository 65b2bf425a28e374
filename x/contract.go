package x

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/migration"
)

// Executor passes decoded execute messages of a contract to its handler.
// Contracts embed it to implement the Check and Execute entry points.
type Executor struct {
	Decode  suitdrop.TxDecoder
	Handler suitdrop.Handler
}

// Check decodes the message and runs the handler check.
func (e Executor) Check(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.CheckResult, error) {
	tx, err := e.Decode(raw)
	if err != nil {
		return nil, err
	}
	return e.Handler.Check(ctx, db, tx)
}

// Execute decodes the message and delivers it to the handler.
func (e Executor) Execute(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	tx, err := e.Decode(raw)
	if err != nil {
		return nil, err
	}
	return e.Handler.Deliver(ctx, db, tx)
}

// UnmarshalMsg decodes a JSON message into dst. Unknown fields are
// rejected.
func UnmarshalMsg(raw []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.ErrInput.Is(err) || errors.ErrAmount.Is(err) {
			return errors.Wrap(err, "cannot decode message")
		}
		return errors.Wrapf(errors.ErrMsg, "cannot decode message: %s", err)
	}
	return nil
}

// ExactlyOne returns the only message that is not nil. Messages of an
// execute or query envelope are declared as pointers, so that a missing
// message is a nil pointer.
func ExactlyOne(msgs ...suitdrop.Msg) (suitdrop.Msg, error) {
	var found suitdrop.Msg
	for _, m := range msgs {
		if m == nil || reflect.ValueOf(m).IsNil() {
			continue
		}
		if found != nil {
			return nil, errors.Wrap(errors.ErrMsg, "more than one message")
		}
		found = m
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return found, nil
}

// QueryResponse serializes the answer of a query.
func QueryResponse(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodec, "cannot serialize response: %s", err)
	}
	return raw, nil
}

// MigrateMsg is the migration message of all contracts. It carries no
// parameters.
type MigrateMsg struct{}

// Migrate accepts an empty migration message and records the new version of
// the contract code. The state must be owned by the same contract.
func Migrate(db suitdrop.KVStore, raw []byte, contract, version string) (*suitdrop.DeliverResult, error) {
	var msg MigrateMsg
	if len(raw) != 0 {
		if err := UnmarshalMsg(raw, &msg); err != nil {
			return nil, err
		}
	}
	prev, err := migration.Upgrade(db, contract, version)
	if err != nil {
		return nil, err
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent("wasm",
				"action", "migrate",
				"from_version", prev.Version,
				"to_version", version),
		},
	}, nil
}
