package droptest

import (
	"github.com/iov-one/suitdrop"
)

// Msg is a mock implementation of the suitdrop.Msg interface.
type Msg struct {
	// RoutePath is returned by the Path method.
	RoutePath string
	// Err is returned by the Validate method.
	Err error
}

var _ suitdrop.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

// Tx is a mock implementation of the suitdrop.Tx interface.
type Tx struct {
	Msg suitdrop.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ suitdrop.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (suitdrop.Msg, error) {
	return tx.Msg, tx.Err
}
