package x

import (
	"context"
	"fmt"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system.
type Authenticator interface {
	// GetSigners reveals all addresses that authorized the message.
	// The first one is the message sender.
	GetSigners(suitdrop.Context) []suitdrop.Address
	// HasAddress checks if any signer matches this address
	HasAddress(suitdrop.Context, suitdrop.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators
func (m MultiAuth) GetSigners(ctx suitdrop.Context) []suitdrop.Address {
	var res []suitdrop.Address
	for _, impl := range m.impls {
		add := impl.GetSigners(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx suitdrop.Context, addr suitdrop.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx suitdrop.Context, auth Authenticator) suitdrop.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// Sender returns the main signer or ErrUnauthorized if the message was not
// signed by anyone.
func Sender(ctx suitdrop.Context, auth Authenticator) (suitdrop.Address, error) {
	sender := MainSigner(ctx, auth)
	if sender == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	return sender, nil
}

// AssertOwner succeeds iff the given owner authorized the message.
// Every owner only operation must call it before modifying the state.
func AssertOwner(ctx suitdrop.Context, auth Authenticator, owner suitdrop.Address) error {
	if len(owner) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "no owner")
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner did not sign")
	}
	return nil
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx suitdrop.Context, auth Authenticator, required []suitdrop.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// CtxAuth implements Authenticator using the context to store and retrieve
// signers. The runtime sets the sender of every message with SetSigners.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

var _ Authenticator = CtxAuth{}

// SetSigners returns a context with given signers, replacing any previously
// set.
func (a CtxAuth) SetSigners(ctx suitdrop.Context, signers ...suitdrop.Address) suitdrop.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

func (a CtxAuth) GetSigners(ctx suitdrop.Context) []suitdrop.Address {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	signers, ok := val.([]suitdrop.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []suitdrop.Address got %T", val))
	}
	return signers
}

func (a CtxAuth) HasAddress(ctx suitdrop.Context, addr suitdrop.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
