package token

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/app"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/migration"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/utils"
)

const (
	// ContractName identifies the token code in the migration records.
	ContractName    = "suitdrop-token"
	ContractVersion = "0.1.0"
)

// Contract is the token contract code.
type Contract struct {
	x.Executor
	ctrl Controller
}

var _ suitdrop.Contract = (*Contract)(nil)

// NewContract returns the token contract using given authenticator to
// identify the sender.
func NewContract(auth x.Authenticator) *Contract {
	ctrl := NewController()
	r := app.NewRouter()
	RegisterRoutes(r, auth, ctrl)
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
		ctrl: ctrl,
	}
}

// Instantiate stores the token metadata and credits the initial balances.
func (c *Contract) Instantiate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	var msg InstantiateMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	info := Info{
		Name:     msg.Name,
		Symbol:   msg.Symbol,
		Decimals: msg.Decimals,
	}
	for _, b := range msg.InitialBalances {
		total, err := info.TotalSupply.Add(b.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "total supply")
		}
		info.TotalSupply = total
		if err := c.ctrl.IssueCoins(db, b.Address, b.Amount); err != nil {
			return nil, errors.Wrapf(err, "initial balance of %s", b.Address)
		}
	}
	if err := gconf.Save(db, infoKey, &info); err != nil {
		return nil, errors.Wrap(err, "token info")
	}
	if err := migration.SetContractVersion(db, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"action", "instantiate",
				"symbol", info.Symbol,
				"total_supply", info.TotalSupply.String()),
		},
	}, nil
}

// Query answers balance and token_info requests.
func (c *Contract) Query(ctx suitdrop.Context, db suitdrop.ReadOnlyKVStore, raw []byte) ([]byte, error) {
	var q QueryMsg
	if err := x.UnmarshalMsg(raw, &q); err != nil {
		return nil, err
	}
	msg, err := q.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid query")
	}
	switch msg := msg.(type) {
	case *BalanceQuery:
		amount, err := c.ctrl.Balance(db, msg.Address)
		if err != nil {
			return nil, err
		}
		return x.QueryResponse(BalanceResponse{Balance: amount})
	case *TokenInfoQuery:
		var info Info
		if err := gconf.Load(db, infoKey, &info); err != nil {
			return nil, errors.Wrap(err, "token info")
		}
		return x.QueryResponse(TokenInfoResponse{
			Name:        info.Name,
			Symbol:      info.Symbol,
			Decimals:    info.Decimals,
			TotalSupply: info.TotalSupply,
		})
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unhandled query %T", msg)
	}
}

func (c *Contract) Migrate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	return x.Migrate(db, raw, ContractName, ContractVersion)
}
