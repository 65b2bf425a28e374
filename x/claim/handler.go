package claim

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/merkle"
	"github.com/iov-one/suitdrop/orm"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/token"
	"github.com/iov-one/suitdrop/x/utils"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r suitdrop.Registry, auth x.Authenticator) {
	r.Handle(&UpdateConfigMsg{}, &UpdateConfigHandler{auth: auth})
	r.Handle(&RegisterMerkleRootMsg{}, &RegisterMerkleRootHandler{auth: auth})
	r.Handle(&ClaimMsg{}, &ClaimHandler{auth: auth, claims: NewClaimBucket()})
	r.Handle(&WithdrawAllMsg{}, &WithdrawAllHandler{auth: auth})
}

func loadConfig(db gconf.ReadStore) (*Config, error) {
	var conf Config
	if err := gconf.Load(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return &conf, nil
}

func loadRoot(db gconf.ReadStore) (*MerkleRoot, error) {
	var root MerkleRoot
	switch err := gconf.Load(db, rootKey, &root); {
	case err == nil:
		return &root, nil
	case errors.ErrNotFound.Is(err):
		return &MerkleRoot{}, nil
	default:
		return nil, errors.Wrap(err, "merkle root")
	}
}

// contractBalance returns the token balance held by the executing contract
// instance.
func contractBalance(ctx suitdrop.Context, conf *Config) (coin.Amount, error) {
	self, ok := suitdrop.GetContract(ctx)
	if !ok {
		return coin.Amount{}, errors.Wrap(errors.ErrHuman, "no contract address in context")
	}
	return token.QueryBalance(ctx, conf.TokenAddress, self)
}

// UpdateConfigHandler lets the owner change the configuration.
type UpdateConfigHandler struct {
	auth x.Authenticator
}

var _ suitdrop.Handler = (*UpdateConfigHandler)(nil)

func (h *UpdateConfigHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

func (h *UpdateConfigHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := gconf.Save(db, configKey, conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return &suitdrop.DeliverResult{}, nil
}

// validate returns the configuration with the changes applied.
func (h *UpdateConfigHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*Config, error) {
	var msg UpdateConfigMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	if err := x.AssertOwner(ctx, h.auth, conf.Owner); err != nil {
		return nil, err
	}
	if msg.Owner != "" {
		if conf.Owner, err = parseAddress(msg.Owner); err != nil {
			return nil, err
		}
	}
	if msg.TokenAddress != "" {
		if conf.TokenAddress, err = parseAddress(msg.TokenAddress); err != nil {
			return nil, err
		}
	}
	if msg.ClaimAmount != nil {
		conf.ClaimAmount = *msg.ClaimAmount
	}
	return conf, nil
}

// RegisterMerkleRootHandler lets the owner replace the merkle root.
type RegisterMerkleRootHandler struct {
	auth x.Authenticator
}

var _ suitdrop.Handler = (*RegisterMerkleRootHandler)(nil)

func (h *RegisterMerkleRootHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

func (h *RegisterMerkleRootHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	root, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := gconf.Save(db, rootKey, root); err != nil {
		return nil, errors.Wrap(err, "merkle root")
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType, "root", root.Hex()),
		},
	}, nil
}

func (h *RegisterMerkleRootHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*MerkleRoot, error) {
	var msg RegisterMerkleRootMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	if err := x.AssertOwner(ctx, h.auth, conf.Owner); err != nil {
		return nil, err
	}
	var root MerkleRoot
	if msg.Root != "" {
		if root.Root, err = decodeHash(msg.Root); err != nil {
			return nil, err
		}
	}
	return &root, nil
}

// ClaimHandler pays out the claim amount to an account proving it is part
// of the airdrop.
type ClaimHandler struct {
	auth   x.Authenticator
	claims orm.ModelBucket
}

var _ suitdrop.Handler = (*ClaimHandler)(nil)

func (h *ClaimHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

func (h *ClaimHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	conf, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := suitdrop.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	transfer, err := token.TransferEffect(conf.TokenAddress, sender, conf.ClaimAmount)
	if err != nil {
		return nil, err
	}
	info := ClaimInfo{Amount: conf.ClaimAmount, ClaimedTimestamp: now}
	if err := h.claims.Put(db, sender, &info); err != nil {
		return nil, errors.Wrap(err, "claim record")
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"address", sender.String(),
				"claimed_amount", conf.ClaimAmount.String()),
		},
		Effects: []suitdrop.SubMsg{transfer},
	}, nil
}

// validate runs all claim conditions. An account that claimed already is
// rejected before its proof is looked at.
func (h *ClaimHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*Config, suitdrop.Address, error) {
	var msg ClaimMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := x.Sender(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	switch err := h.claims.Has(db, sender); {
	case err == nil:
		return nil, nil, errors.Wrapf(ErrClaimed, "account %s", sender)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}

	root, err := loadRoot(db)
	if err != nil {
		return nil, nil, err
	}
	if len(root.Root) == 0 {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "merkle root not registered")
	}
	proof := make([][]byte, len(msg.Proof))
	for i, p := range msg.Proof {
		if proof[i], err = decodeHash(p); err != nil {
			return nil, nil, errors.Wrapf(err, "proof element %d", i)
		}
	}
	leaf := merkle.LeafHash([]byte(sender.String()))
	if !merkle.Verify(leaf, proof, root.Root) {
		return nil, nil, errors.Wrapf(ErrVerificationFailed, "account %s", sender)
	}

	conf, err := loadConfig(db)
	if err != nil {
		return nil, nil, err
	}
	balance, err := contractBalance(ctx, conf)
	if err != nil {
		return nil, nil, err
	}
	if balance.IsZero() {
		return nil, nil, errors.Wrap(ErrInsufficient, "nothing left to claim")
	}
	return conf, sender, nil
}

// WithdrawAllHandler sends the whole token balance to the owner.
type WithdrawAllHandler struct {
	auth x.Authenticator
}

var _ suitdrop.Handler = (*WithdrawAllHandler)(nil)

func (h *WithdrawAllHandler) Check(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &suitdrop.CheckResult{}, nil
}

func (h *WithdrawAllHandler) Deliver(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*suitdrop.DeliverResult, error) {
	conf, balance, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	transfer, err := token.TransferEffect(conf.TokenAddress, conf.Owner, balance)
	if err != nil {
		return nil, err
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType, "amount", balance.String()),
		},
		Effects: []suitdrop.SubMsg{transfer},
	}, nil
}

func (h *WithdrawAllHandler) validate(ctx suitdrop.Context, db suitdrop.KVStore, tx suitdrop.Tx) (*Config, coin.Amount, error) {
	var msg WithdrawAllMsg
	if err := suitdrop.LoadMsg(tx, &msg); err != nil {
		return nil, coin.Amount{}, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfig(db)
	if err != nil {
		return nil, coin.Amount{}, err
	}
	if err := x.AssertOwner(ctx, h.auth, conf.Owner); err != nil {
		return nil, coin.Amount{}, err
	}
	balance, err := contractBalance(ctx, conf)
	if err != nil {
		return nil, coin.Amount{}, err
	}
	if balance.IsZero() {
		return nil, coin.Amount{}, errors.Wrap(ErrInsufficient, "nothing to withdraw")
	}
	return conf, balance, nil
}
