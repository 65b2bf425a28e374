package droptest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/suitdrop"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. This is for the convenience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. When
	// present, it is the main signer.
	Signer suitdrop.Address

	// Signers represents an authentication of multiple signers.
	Signers []suitdrop.Address
}

func (a *Auth) GetSigners(suitdrop.Context) []suitdrop.Address {
	if a.Signer != nil {
		return append([]suitdrop.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx suitdrop.Context, addr suitdrop.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// NewCondition returns a new and unique condition. The address of the
// condition can be used as a test account.
func NewCondition() suitdrop.Condition {
	return suitdrop.NewCondition("droptest", "test", SequenceID(atomic.AddUint64(&sequence, 1)))
}

var sequence uint64

// SequenceID returns an ID encoded as if it was generated by a bucket
// sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
