package nft

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/app"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/migration"
	"github.com/iov-one/suitdrop/orm"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/utils"
)

const (
	// ContractName identifies the nft code in the migration records.
	ContractName    = "suitdrop-nft"
	ContractVersion = "0.1.0"
)

// Contract is the non fungible token contract code.
type Contract struct {
	x.Executor
	tokens orm.ModelBucket
	count  orm.Sequence
}

var _ suitdrop.Contract = (*Contract)(nil)

// NewContract returns the nft contract using given authenticator to identify
// the sender.
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
		tokens: NewTokenBucket(),
		count:  NewTokenCount(),
	}
}

func (c *Contract) Instantiate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	var msg InstantiateMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	conf := Config{
		Name:   msg.Name,
		Symbol: msg.Symbol,
		Minter: msg.Minter,
	}
	if err := gconf.Save(db, configKey, &conf); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	if err := migration.SetContractVersion(db, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	return &suitdrop.DeliverResult{
		Events: []suitdrop.Event{
			suitdrop.NewEvent(utils.EventType,
				"action", "instantiate",
				"minter", conf.Minter.String()),
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
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid query")
	}

	switch msg := msg.(type) {
	case *OwnerOfQuery:
		var t Token
		if err := c.tokens.One(db, []byte(msg.TokenID), &t); err != nil {
			return nil, errors.Wrapf(err, "token %q", msg.TokenID)
		}
		return x.QueryResponse(OwnerOfResponse{Owner: t.Owner})
	case *NftInfoQuery:
		var t Token
		if err := c.tokens.One(db, []byte(msg.TokenID), &t); err != nil {
			return nil, errors.Wrapf(err, "token %q", msg.TokenID)
		}
		ext := t.Extension
		if len(ext) == 0 {
			ext = []byte("null")
		}
		return x.QueryResponse(NftInfoResponse{TokenURI: t.TokenURI, Extension: ext})
	case *NumTokensQuery:
		n, err := c.count.Latest(db)
		if err != nil {
			return nil, err
		}
		return x.QueryResponse(NumTokensResponse{Count: n})
	case *ContractInfoQuery:
		var conf Config
		if err := gconf.Load(db, configKey, &conf); err != nil {
			return nil, errors.Wrap(err, "config")
		}
		return x.QueryResponse(ContractInfoResponse{Name: conf.Name, Symbol: conf.Symbol, Minter: conf.Minter})
	case *AllTokensQuery:
		ids, err := c.allTokens(db, msg)
		if err != nil {
			return nil, err
		}
		return x.QueryResponse(TokensResponse{Tokens: ids})
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unhandled query %T", msg)
	}
}

func (c *Contract) allTokens(db suitdrop.ReadOnlyKVStore, q *AllTokensQuery) ([]string, error) {
	var start []byte
	if q.StartAfter != "" {
		// The smallest key greater than StartAfter.
		start = append([]byte(q.StartAfter), 0)
	}
	it, err := c.tokens.Iterate(db, start)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	ids := make([]string, 0, q.limit())
	for len(ids) < q.limit() {
		var t Token
		switch key, err := it.LoadNext(&t); {
		case err == nil:
			ids = append(ids, string(key))
		case errors.ErrIteratorDone.Is(err):
			return ids, nil
		default:
			return nil, err
		}
	}
	return ids, nil
}

func (c *Contract) Migrate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	return x.Migrate(db, raw, ContractName, ContractVersion)
}
