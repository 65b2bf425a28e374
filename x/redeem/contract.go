package redeem

import (
	"encoding/json"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/app"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/migration"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/nft"
	"github.com/iov-one/suitdrop/x/utils"
)

const (
	// ContractName identifies the redeem code in the migration records.
	ContractName    = "suitdrop-redeem"
	ContractVersion = "0.1.0"

	// InstantiateReplyID tags the only sub message that asks for a reply:
	// the creation of the nft contract. A broker never has more than one
	// such request outstanding.
	InstantiateReplyID uint64 = 1
)

// Contract is the nft mint broker contract code.
type Contract struct {
	x.Executor
}

var (
	_ suitdrop.Contract = (*Contract)(nil)
	_ suitdrop.Replier  = (*Contract)(nil)
)

// NewContract returns the redeem contract using given authenticator to
// identify the sender.
func NewContract(auth x.Authenticator) *Contract {
	r := app.NewRouter()
	RegisterRoutes(r, auth)
	return &Contract{
		Executor: x.Executor{
			Decode: DecodeExecuteMsg,
			Handler: app.ChainDecorators(
				utils.NewLogging(),
				utils.NewRecovery(),
				utils.NewSavepoint().OnDeliver(),
				utils.NewActionTagger(),
			).WithHandler(r),
		},
	}
}

// Instantiate stores the configuration and requests the creation of the nft
// contract, minted by this instance.
func (c *Contract) Instantiate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	var msg InstantiateMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	self, ok := suitdrop.GetContract(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "no contract address in context")
	}
	if err := migration.SetContractVersion(db, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	conf := Config{
		Owner:       msg.Owner,
		MaxTokens:   msg.MaxTokens,
		Name:        msg.Name,
		Symbol:      msg.Symbol,
		NextTokenID: 1,
	}
	if err := gconf.Save(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	nftInit, err := json.Marshal(nft.InstantiateMsg{
		Name:   msg.Name + " cw721_base",
		Symbol: msg.Symbol,
		Minter: self,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodec, "nft instantiate: %s", err)
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"action", "instantiate",
				"owner", msg.Owner.String()),
		},
		Effects: []suitdrop.SubMsg{
			suitdrop.ReplyOnSuccess(InstantiateReplyID, suitdrop.InstantiateEffect{
				CodeID: msg.TokenCodeID,
				Msg:    nftInit,
				Label:  msg.Name,
			}),
		},
	}, nil
}

// Reply links the created nft contract. It is accepted only once.
func (c *Contract) Reply(ctx suitdrop.Context, db suitdrop.KVStore, reply suitdrop.Reply) (*suitdrop.DeliverResult, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	if conf.Linked() {
		return nil, errors.Wrapf(ErrCw721AlreadyLinked, "linked to %s", conf.NftAddress)
	}
	if reply.ID != InstantiateReplyID {
		return nil, errors.Wrapf(ErrInvalidTokenReplyID, "reply id %d", reply.ID)
	}
	_, addr, err := suitdrop.ParseInstantiateResponse(reply.Data)
	if err != nil {
		return nil, errors.Wrap(err, "instantiate reply")
	}
	conf.NftAddress = addr
	if err := gconf.Save(db, configKey, conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				utils.ActionKey, "link_cw721",
				"cw721_address", addr.String()),
		},
	}, nil
}

func (c *Contract) Query(ctx suitdrop.Context, db suitdrop.ReadOnlyKVStore, raw []byte) ([]byte, error) {
	var q QueryMsg
	if err := x.UnmarshalMsg(raw, &q); err != nil {
		return nil, err
	}
	msg, err := q.GetMsg()
	if err != nil {
		return nil, err
	}
	switch msg.(type) {
	case *GetConfigQuery:
		conf, err := loadConfig(db)
		if err != nil {
			return nil, err
		}
		return x.QueryResponse(ConfigResponse{
			Owner:        conf.Owner,
			ChildAddress: conf.NftAddress,
			MaxTokens:    conf.MaxTokens,
			Name:         conf.Name,
			Symbol:       conf.Symbol,
			NextTokenID:  conf.NextTokenID,
		})
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unhandled query %T", msg)
	}
}

func (c *Contract) Migrate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	return x.Migrate(db, raw, ContractName, ContractVersion)
}
