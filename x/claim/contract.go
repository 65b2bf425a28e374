package claim

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
	// ContractName identifies the claim code in the migration records.
	ContractName    = "suitdrop-claim"
	ContractVersion = "0.1.0"
)

// Contract is the airdrop claim contract code.
type Contract struct {
	x.Executor
	auth   x.Authenticator
	claims orm.ModelBucket
}

var _ suitdrop.Contract = (*Contract)(nil)

// NewContract returns the claim contract using given authenticator to
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
		auth:   auth,
		claims: NewClaimBucket(),
	}
}

// Instantiate configures the contract with the sender as the owner. No
// merkle root is registered until the owner provides one.
func (c *Contract) Instantiate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	var msg InstantiateMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	owner, err := x.Sender(ctx, c.auth)
	if err != nil {
		return nil, err
	}
	tokenAddr, err := parseAddress(msg.TokenAddress)
	if err != nil {
		return nil, errors.Field("TokenAddress", err, "")
	}
	conf := Config{
		Owner:        owner,
		TokenAddress: tokenAddr,
		ClaimAmount:  msg.ClaimAmount,
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
				"owner", owner.String(),
				"token_address", tokenAddr.String()),
		},
	}, nil
}

// Query answers config, merkle_root and claim_info requests.
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
	case *ConfigQuery:
		conf, err := loadConfig(db)
		if err != nil {
			return nil, err
		}
		return x.QueryResponse(ConfigResponse{
			Owner:        conf.Owner,
			TokenAddress: conf.TokenAddress,
			ClaimAmount:  conf.ClaimAmount,
		})
	case *MerkleRootQuery:
		root, err := loadRoot(db)
		if err != nil {
			return nil, err
		}
		return x.QueryResponse(MerkleRootResponse{Root: root.Hex()})
	case *ClaimInfoQuery:
		addr, err := parseAddress(msg.Address)
		if err != nil {
			return nil, err
		}
		var info ClaimInfo
		if err := c.claims.One(db, addr, &info); err != nil && !errors.ErrNotFound.Is(err) {
			return nil, err
		}
		return x.QueryResponse(ClaimInfoResponse{
			Amount:           info.Amount,
			ClaimedTimestamp: info.ClaimedTimestamp,
		})
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unhandled query %T", msg)
	}
}

func (c *Contract) Migrate(ctx suitdrop.Context, db suitdrop.KVStore, raw []byte) (*suitdrop.DeliverResult, error) {
	return x.Migrate(db, raw, ContractName, ContractVersion)
}
