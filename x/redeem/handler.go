package redeem

import (
	"encoding/json"
	"strconv"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/nft"
	"github.com/iov-one/suitdrop/x/utils"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r suitdrop.Registry, auth x.Authenticator) {
	r.Handle(&MintMsg{}, &MintHandler{auth: auth})
}

func loadConfig(db gconf.ReadStore) (*Config, error) {
	var conf Config
	if err := gconf.Load(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return &conf, nil
}

// MintHandler requests the linked nft contract to mint the next token.
type MintHandler struct {
	auth x.Authenticator
}

var _ suitdrop.Handler = (*MintHandler)(nil)

func (h *MintHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

// Deliver emits the mint effect and advances the counter. Both happen in
// the same message, so a failed mint never consumes an id.
func (h *MintHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	msg, conf, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tokenID := strconv.FormatUint(conf.NextTokenID, 10)
	raw, err := json.Marshal(nft.ExecuteMsg{
		Mint: &nft.MintMsg{
			TokenID:   tokenID,
			Owner:     sender,
			TokenURI:  msg.URI,
			Extension: msg.Extension,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodec, "mint: %s", err)
	}

	conf.NextTokenID++
	if err := gconf.Save(db, configKey, conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return &suitdrop.DeliverResult{
		Data: []byte(tokenID),
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"token_id", tokenID,
				"owner", sender.String()),
		},
		Effects: []suitdrop.SubMsg{
			suitdrop.NewSubMsg(suitdrop.ExecuteEffect{Contract: conf.NftAddress, Msg: raw}),
		},
	}, nil
}

func (h *MintHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*MintMsg, *Config, suitdrop.Address, error) {
	var msg MintMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfig(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := x.AssertOwner(ctx, h.auth, conf.Owner); err != nil {
		return nil, nil, nil, err
	}
	if !conf.Linked() {
		return nil, nil, nil, errors.Wrap(ErrUninitialized, "nft contract not linked")
	}
	if conf.NextTokenID >= conf.MaxTokens {
		return nil, nil, nil, errors.Wrapf(ErrMaxTokensExceed, "next id %d, max %d", conf.NextTokenID, conf.MaxTokens)
	}
	sender, err := x.Sender(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, conf, sender, nil
}
