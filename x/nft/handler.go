package nft

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/orm"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/utils"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r suitdrop.Registry, auth x.Authenticator) {
	tokens := NewTokenBucket()
	r.Handle(&MintMsg{}, &MintHandler{auth: auth, tokens: tokens, count: NewTokenCount()})
	r.Handle(&TransferNftMsg{}, &TransferNftHandler{auth: auth, tokens: tokens})
}

// MintHandler creates tokens on request of the minter.
type MintHandler struct {
	auth   x.Authenticator
	tokens orm.ModelBucket
	count  orm.Sequence
}

var _ suitdrop.Handler = (*MintHandler)(nil)

func (h *MintHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

func (h *MintHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	token := Token{
		Owner:     msg.Owner,
		TokenURI:  msg.TokenURI,
		Extension: msg.Extension,
	}
	if err := h.tokens.Put(db, []byte(msg.TokenID), &token); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	if _, err := h.count.NextInt(db); err != nil {
		return nil, errors.Wrap(err, "token count")
	}
	minter, _ := x.Sender(ctx, h.auth)
	return &suitdrop.DeliverResult{
		Data: []byte(msg.TokenID),
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"minter", minter.String(),
				"owner", msg.Owner.String(),
				"token_id", msg.TokenID),
		},
	}, nil
}

func (h *MintHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	var conf Config
	if err := gconf.Load(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if err := x.AssertOwner(ctx, h.auth, conf.Minter); err != nil {
		return nil, errors.Wrap(err, "minter only")
	}
	switch err := h.tokens.Has(db, []byte(msg.TokenID)); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %q already minted", msg.TokenID)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	return &msg, nil
}

// TransferNftHandler changes the owner of a token.
type TransferNftHandler struct {
	auth   x.Authenticator
	tokens orm.ModelBucket
}

var _ suitdrop.Handler = (*TransferNftHandler)(nil)

func (h *TransferNftHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

func (h *TransferNftHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	msg, token, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	sender := token.Owner
	token.Owner = msg.Recipient
	if err := h.tokens.Put(db, []byte(msg.TokenID), token); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"sender", sender.String(),
				"recipient", msg.Recipient.String(),
				"token_id", msg.TokenID),
		},
	}, nil
}

func (h *TransferNftHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*TransferNftMsg, *Token, error) {
	var msg TransferNftMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var token Token
	if err := h.tokens.One(db, []byte(msg.TokenID), &token); err != nil {
		return nil, nil, errors.Wrapf(err, "token %q", msg.TokenID)
	}
	if err := x.AssertOwner(ctx, h.auth, token.Owner); err != nil {
		return nil, nil, errors.Wrap(err, "token owner only")
	}
	return &msg, &token, nil
}
