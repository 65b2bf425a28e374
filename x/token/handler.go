package token

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/utils"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r suitdrop.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&TransferMsg{}, NewTransferHandler(auth, ctrl))
}

// TransferHandler moves tokens from the sender to the recipient.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ suitdrop.Handler = TransferHandler{}

func NewTransferHandler(auth x.Authenticator, ctrl Controller) TransferHandler {
	return TransferHandler{auth: auth, ctrl: ctrl}
}

// Check verifies the sender holds enough tokens.
func (h TransferHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	have, err := h.ctrl.Balance(db, sender)
	if err != nil {
		return nil, err
	}
	if !have.IsGTE(msg.Amount) {
		return nil, errors.Wrapf(ErrInsufficientFunds, "have %s, need %s", have, msg.Amount)
	}
	return &suitdrop.CheckResult{}, nil
}

// Deliver moves the tokens if all preconditions are met.
func (h TransferHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, sender, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"from", sender.String(),
				"to", msg.Recipient.String(),
				"amount", msg.Amount.String()),
		},
	}, nil
}

func (h TransferHandler) validate(ctx suitdrop.Context, tx suitdrop.Tx) (*TransferMsg, suitdrop.Address, error) {
	var msg TransferMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := x.Sender(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}
