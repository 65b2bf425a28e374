package suitdrop

import (
	"reflect"

	"github.com/iov-one/suitdrop/errors"
)

// Msg is a single contract action. It is decoded from the JSON execute
// message and validated before it reaches its handler. The sender comes
// from the context, never from the message.
type Msg interface {
	// Path routes the message to its handler. It matches [0-9A-Za-z_\-]+
	// and several message types may share it.
	Path() string

	// Validate checks the message content without reading any state.
	Validate() error
}

// Marshaller serializes a value to its binary form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be loaded back. Unmarshal
// usually needs a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent to a contract. Each contract declares its own
// execute envelope that holds exactly one of its messages.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath returns the message path, or "(missing)".
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder parses a raw execute message.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into destination, a pointer to the same
// message type, and validates it.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "empty message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}

	src := reflect.ValueOf(msg)
	// Messages are usually passed around by pointer.
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if src.Type() != dest.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dest.Elem().Set(src)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
