package claim

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/droptest"
	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/merkle"
	"github.com/iov-one/suitdrop/store"
	"github.com/iov-one/suitdrop/x"
	"github.com/iov-one/suitdrop/x/token"
)

var testAuth = x.CtxAuth{Key: "claim"}

var blockTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// env holds a claim contract instance together with the collaborators its
// context needs.
type env struct {
	contract *Contract
	db       suitdrop.CacheableKVStore
	self     suitdrop.Address
	token    suitdrop.Address
	owner    suitdrop.Address
	querier  *droptest.Querier
}

func newEnv(t testing.TB, claimAmount string) *env {
	t.Helper()
	e := &env{
		contract: NewContract(testAuth),
		db:       store.MemStore(),
		self:     droptest.NewCondition().Address(),
		token:    droptest.NewCondition().Address(),
		owner:    droptest.NewCondition().Address(),
		querier:  &droptest.Querier{Responses: map[string]interface{}{}},
	}
	e.setBalance("0")
	msg := fmt.Sprintf(`{"token_address": %q, "claim_amount": %q}`, e.token, claimAmount)
	_, err := e.contract.Instantiate(e.ctx(e.owner), e.db, []byte(msg))
	assert.Nil(t, err)
	return e
}

func (e *env) setBalance(amount string) {
	e.querier.Responses[e.token.String()] = token.BalanceResponse{Balance: coin.MustParseAmount(amount)}
}

func (e *env) ctx(signer suitdrop.Address) suitdrop.Context {
	ctx := droptest.BlockContext(10, blockTime)
	ctx = suitdrop.WithContract(ctx, e.self)
	ctx = suitdrop.WithQuerier(ctx, e.querier)
	if signer != nil {
		ctx = testAuth.SetSigners(ctx, signer)
	}
	return ctx
}

func (e *env) execute(signer suitdrop.Address, msg string) (*suitdrop.DeliverResult, error) {
	return e.contract.Execute(e.ctx(signer), e.db, []byte(msg))
}

func (e *env) query(t testing.TB, msg string, dest interface{}) {
	t.Helper()
	raw, err := e.contract.Query(e.ctx(nil), e.db, []byte(msg))
	assert.Nil(t, err)
	assert.Nil(t, json.Unmarshal(raw, dest))
}

func leaf(addr suitdrop.Address) []byte {
	return merkle.LeafHash([]byte(addr.String()))
}

func registerRootMsg(root []byte) string {
	return fmt.Sprintf(`{"register_merkle_root": {"root": %q}}`, hex.EncodeToString(root))
}

func claimMsg(proof ...[]byte) string {
	enc := make([]string, len(proof))
	for i, p := range proof {
		enc[i] = fmt.Sprintf("%q", hex.EncodeToString(p))
	}
	return fmt.Sprintf(`{"claim": {"proof": [%s]}}`, strings.Join(enc, ","))
}

func TestClaimSingleLeafRoot(t *testing.T) {
	e := newEnv(t, "100")
	alice := droptest.NewCondition().Address()
	e.setBalance("100")

	_, err := e.execute(e.owner, registerRootMsg(leaf(alice)))
	assert.Nil(t, err)

	res, err := e.execute(alice, claimMsg())
	assert.Nil(t, err)

	action, _ := res.Events[0].Attr("action")
	assert.Equal(t, "claim", action)
	claimed, _ := res.Events[0].Attr("claimed_amount")
	assert.Equal(t, "100", claimed)

	assert.Equal(t, 1, len(res.Effects))
	eff, ok := res.Effects[0].Effect.(suitdrop.ExecuteEffect)
	if !ok {
		t.Fatalf("unexpected effect: %T", res.Effects[0].Effect)
	}
	assert.Equal(t, e.token, eff.Contract)
	tx, err := token.DecodeExecuteMsg(eff.Msg)
	assert.Nil(t, err)
	var transfer token.TransferMsg
	assert.Nil(t, suitdrop.LoadMsg(tx, &transfer))
	assert.Equal(t, alice, transfer.Recipient)
	assert.Equal(t, "100", transfer.Amount.String())

	var info ClaimInfoResponse
	e.query(t, fmt.Sprintf(`{"claim_info": {"address": %q}}`, alice), &info)
	assert.Equal(t, "100", info.Amount.String())
	assert.Equal(t, suitdrop.AsUnixTime(blockTime), info.ClaimedTimestamp)

	_, err = e.execute(alice, claimMsg())
	assert.IsErr(t, ErrClaimed, err)
}

func TestClaimConditions(t *testing.T) {
	members := make([]suitdrop.Address, 5)
	leaves := make([][]byte, len(members))
	for i := range members {
		members[i] = droptest.NewCondition().Address()
		leaves[i] = []byte(members[i].String())
	}
	tree, err := merkle.NewTree(leaves)
	assert.Nil(t, err)
	proofOf := func(addr suitdrop.Address) [][]byte {
		p, err := tree.Proof([]byte(addr.String()))
		assert.Nil(t, err)
		return p
	}
	outsider := droptest.NewCondition().Address()

	cases := map[string]struct {
		root    []byte
		balance string
		claimed bool
		signer  suitdrop.Address
		msg     string
		wantErr *errors.Error
	}{
		"member with a valid proof": {
			root:    tree.Root(),
			balance: "1000",
			signer:  members[2],
			msg:     claimMsg(proofOf(members[2])...),
		},
		"already claimed with a broken proof": {
			root:    tree.Root(),
			balance: "1000",
			claimed: true,
			signer:  members[2],
			msg:     `{"claim": {"proof": ["zz"]}}`,
			wantErr: ErrClaimed,
		},
		"no root registered": {
			balance: "1000",
			signer:  members[0],
			msg:     claimMsg(proofOf(members[0])...),
			wantErr: errors.ErrUnauthorized,
		},
		"proof is not hex": {
			root:    tree.Root(),
			balance: "1000",
			signer:  members[0],
			msg:     `{"claim": {"proof": ["not-hex"]}}`,
			wantErr: ErrInvalidInput,
		},
		"proof element too short": {
			root:    tree.Root(),
			balance: "1000",
			signer:  members[0],
			msg:     `{"claim": {"proof": ["abcd"]}}`,
			wantErr: ErrWrongLength,
		},
		"proof of another member": {
			root:    tree.Root(),
			balance: "1000",
			signer:  members[0],
			msg:     claimMsg(proofOf(members[1])...),
			wantErr: ErrVerificationFailed,
		},
		"not a member": {
			root:    tree.Root(),
			balance: "1000",
			signer:  outsider,
			msg:     claimMsg(proofOf(members[3])...),
			wantErr: ErrVerificationFailed,
		},
		"contract has no tokens": {
			root:    tree.Root(),
			balance: "0",
			signer:  members[4],
			msg:     claimMsg(proofOf(members[4])...),
			wantErr: ErrInsufficient,
		},
		"no sender": {
			root:    tree.Root(),
			balance: "1000",
			msg:     claimMsg(),
			wantErr: errors.ErrUnauthorized,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newEnv(t, "10")
			if tc.root != nil {
				_, err := e.execute(e.owner, registerRootMsg(tc.root))
				assert.Nil(t, err)
			}
			if tc.claimed {
				e.setBalance("1000")
				_, err := e.execute(tc.signer, claimMsg(proofOf(tc.signer)...))
				assert.Nil(t, err)
			}
			e.setBalance(tc.balance)

			cache := e.db.CacheWrap()
			_, err := e.contract.Check(e.ctx(tc.signer), cache, []byte(tc.msg))
			cache.Discard()
			assert.IsErr(t, tc.wantErr, err)

			_, err = e.execute(tc.signer, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestOwnerOnlyMessages(t *testing.T) {
	stranger := droptest.NewCondition().Address()
	newOwner := droptest.NewCondition().Address()

	cases := map[string]struct {
		msg      string
		signer   func(e *env) suitdrop.Address
		wantErr  *errors.Error
		wantConf func(e *env) ConfigResponse
		wantRoot string
	}{
		"owner updates the config": {
			msg:    fmt.Sprintf(`{"update_config": {"owner": %q, "claim_amount": "77"}}`, newOwner),
			signer: func(e *env) suitdrop.Address { return e.owner },
			wantConf: func(e *env) ConfigResponse {
				return ConfigResponse{Owner: newOwner, TokenAddress: e.token, ClaimAmount: coin.NewAmount(77)}
			},
		},
		"stranger updates the config": {
			msg:     fmt.Sprintf(`{"update_config": {"owner": %q}}`, stranger),
			signer:  func(*env) suitdrop.Address { return stranger },
			wantErr: errors.ErrUnauthorized,
		},
		"malformed address": {
			msg:     `{"update_config": {"token_address": "suit1notanaddress"}}`,
			signer:  func(e *env) suitdrop.Address { return e.owner },
			wantErr: ErrInvalidInput,
		},
		"owner registers a root": {
			msg:      registerRootMsg(leaf(stranger)),
			signer:   func(e *env) suitdrop.Address { return e.owner },
			wantRoot: hex.EncodeToString(leaf(stranger)),
		},
		"owner clears the root": {
			msg:    `{"register_merkle_root": {}}`,
			signer: func(e *env) suitdrop.Address { return e.owner },
		},
		"root of a wrong length": {
			msg:     `{"register_merkle_root": {"root": "aabbcc"}}`,
			signer:  func(e *env) suitdrop.Address { return e.owner },
			wantErr: ErrWrongLength,
		},
		"stranger registers a root": {
			msg:     registerRootMsg(leaf(stranger)),
			signer:  func(*env) suitdrop.Address { return stranger },
			wantErr: errors.ErrUnauthorized,
		},
		"stranger withdraws": {
			msg:     `{"withdraw_all": {}}`,
			signer:  func(*env) suitdrop.Address { return stranger },
			wantErr: errors.ErrUnauthorized,
		},
		"two messages": {
			msg:     `{"withdraw_all": {}, "claim": {"proof": []}}`,
			signer:  func(e *env) suitdrop.Address { return e.owner },
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := newEnv(t, "10")
			e.setBalance("500")

			_, err := e.execute(tc.signer(e), tc.msg)
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantConf != nil {
				var conf ConfigResponse
				e.query(t, `{"config": {}}`, &conf)
				assert.Equal(t, tc.wantConf(e), conf)
			}
			var root MerkleRootResponse
			e.query(t, `{"merkle_root": {}}`, &root)
			assert.Equal(t, tc.wantRoot, root.Root)
		})
	}
}

func TestWithdrawAll(t *testing.T) {
	e := newEnv(t, "10")

	_, err := e.execute(e.owner, `{"withdraw_all": {}}`)
	assert.IsErr(t, ErrInsufficient, err)

	e.setBalance("12345")
	res, err := e.execute(e.owner, `{"withdraw_all": {}}`)
	assert.Nil(t, err)
	amount, _ := res.Events[0].Attr("amount")
	assert.Equal(t, "12345", amount)
	action, _ := res.Events[0].Attr("action")
	assert.Equal(t, "withdraw_all", action)

	eff := res.Effects[0].Effect.(suitdrop.ExecuteEffect)
	tx, err := token.DecodeExecuteMsg(eff.Msg)
	assert.Nil(t, err)
	var transfer token.TransferMsg
	assert.Nil(t, suitdrop.LoadMsg(tx, &transfer))
	assert.Equal(t, e.owner, transfer.Recipient)
	assert.Equal(t, "12345", transfer.Amount.String())
}

func TestQueries(t *testing.T) {
	e := newEnv(t, "10")

	var conf ConfigResponse
	e.query(t, `{"config": {}}`, &conf)
	assert.Equal(t, e.owner, conf.Owner)
	assert.Equal(t, e.token, conf.TokenAddress)
	assert.Equal(t, "10", conf.ClaimAmount.String())

	var root MerkleRootResponse
	e.query(t, `{"merkle_root": {}}`, &root)
	assert.Equal(t, "", root.Root)

	var info ClaimInfoResponse
	e.query(t, fmt.Sprintf(`{"claim_info": {"address": %q}}`, droptest.NewCondition().Address()), &info)
	assert.Equal(t, true, info.Amount.IsZero())
	assert.Equal(t, suitdrop.UnixTime(0), info.ClaimedTimestamp)

	_, err := e.contract.Query(e.ctx(nil), e.db, []byte(`{"claim_info": {"address": "somebody"}}`))
	assert.IsErr(t, ErrInvalidInput, err)

	_, err = e.contract.Query(e.ctx(nil), e.db, []byte(`{"balance": {}}`))
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestInstantiate(t *testing.T) {
	tokenAddr := droptest.NewCondition().Address()
	owner := droptest.NewCondition().Address()

	cases := map[string]struct {
		signer  suitdrop.Address
		msg     string
		wantErr *errors.Error
	}{
		"valid": {
			signer: owner,
			msg:    fmt.Sprintf(`{"token_address": %q, "claim_amount": "5"}`, tokenAddr),
		},
		"no sender": {
			msg:     fmt.Sprintf(`{"token_address": %q, "claim_amount": "5"}`, tokenAddr),
			wantErr: errors.ErrUnauthorized,
		},
		"malformed token address": {
			signer:  owner,
			msg:     `{"token_address": "cw20", "claim_amount": "5"}`,
			wantErr: ErrInvalidInput,
		},
		"zero claim amount": {
			signer:  owner,
			msg:     fmt.Sprintf(`{"token_address": %q, "claim_amount": "0"}`, tokenAddr),
			wantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := droptest.BlockContext(1, blockTime)
			if tc.signer != nil {
				ctx = testAuth.SetSigners(ctx, tc.signer)
			}
			_, err := NewContract(testAuth).Instantiate(ctx, store.MemStore(), []byte(tc.msg))
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
