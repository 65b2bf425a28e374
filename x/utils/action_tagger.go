package utils

import (
	"github.com/iov-one/suitdrop"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionTagger will inspect the message being executed and
// add an attribute `action = msg.Path()` to the contract event. This should
// be applied as a decorator so clients have a standard way to search for
// executed actions.
//
// If the handler emitted an event of EventType, the action is inserted as
// its first attribute. Otherwise a new event is added.
type ActionTagger struct{}

var _ suitdrop.Decorator = ActionTagger{}

const (
	// ActionKey is used by ActionTagger as the Key in the attribute it
	// inserts
	ActionKey = "action"
	// EventType is the type of events emitted by contracts.
	EventType = "wasm"
)

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Checker) (*suitdrop.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags the contract event on the result if there is a success.
func (ActionTagger) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx, next suitdrop.Deliverer) (*suitdrop.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	}
	for i, e := range res.Events {
		if e.Type != EventType {
			continue
		}
		if _, ok := e.Attr(ActionKey); ok {
			return res, nil
		}
		attrs := make([]common.KVPair, 0, len(e.Attributes)+1)
		attrs = append(attrs, tag)
		res.Events[i].Attributes = append(attrs, e.Attributes...)
		return res, nil
	}
	res.Events = append(res.Events, suitdrop.Event{
		Type:       EventType,
		Attributes: []common.KVPair{tag},
	})
	return res, nil
}
