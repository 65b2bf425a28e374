package suitdrop

import (
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult captures any non-error result of checking a message.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error result of executing a message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events are key value attributes describing what happened.
	Events []Event
	// Effects are the messages that the runtime executes once the
	// handler returned, in order and within the same atomic unit.
	Effects []SubMsg
}

// Event groups key value attributes emitted by a handler.
type Event struct {
	Type       string
	Attributes []common.KVPair
}

// NewEvent returns an event of given type with attributes built from
// key value pairs. An odd trailing key is ignored.
func NewEvent(typ string, keyvals ...string) Event {
	e := Event{Type: typ}
	for i := 0; i+1 < len(keyvals); i += 2 {
		e = e.Add(keyvals[i], keyvals[i+1])
	}
	return e
}

// Add returns a copy of the event with an attribute appended.
func (e Event) Add(key, value string) Event {
	attrs := make([]common.KVPair, len(e.Attributes), len(e.Attributes)+1)
	copy(attrs, e.Attributes)
	e.Attributes = append(attrs, common.KVPair{Key: []byte(key), Value: []byte(value)})
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}
