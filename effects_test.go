package suitdrop_test

import (
	stdctx "context"
	"testing"
	"time"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

func context() suitdrop.Context {
	return stdctx.Background()
}

func mustBlockInfo(t testing.TB, height int64, now time.Time) suitdrop.BlockInfo {
	t.Helper()
	info, err := suitdrop.NewBlockInfo(abci.Header{Height: height, Time: now}, "suitdrop-test")
	assert.Nil(t, err)
	return info
}

func TestParseInstantiateResponse(t *testing.T) {
	addr := suitdrop.NewCondition("test", "contract", []byte("nft")).Address()

	cases := map[string]struct {
		resp    suitdrop.InstantiateResponse
		raw     []byte
		wantErr *errors.Error
	}{
		"address and data": {
			resp: suitdrop.InstantiateResponse{ContractAddress: addr.String(), Data: []byte("init")},
		},
		"address only": {
			resp: suitdrop.InstantiateResponse{ContractAddress: addr.String()},
		},
		"no address": {
			resp:    suitdrop.InstantiateResponse{Data: []byte("init")},
			wantErr: errors.ErrEmpty,
		},
		"malformed address": {
			resp:    suitdrop.InstantiateResponse{ContractAddress: "suit1nope"},
			wantErr: errors.ErrInput,
		},
		"not protobuf": {
			raw:     []byte{0xff, 0xff, 0xff},
			wantErr: errors.ErrCodec,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw := tc.raw
			if raw == nil {
				var err error
				raw, err = tc.resp.Marshal()
				assert.Nil(t, err)
			}
			res, got, err := suitdrop.ParseInstantiateResponse(raw)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, addr, got)
			assert.Equal(t, tc.resp.Data, res.Data)
		})
	}
}

func TestSubMsg(t *testing.T) {
	eff := suitdrop.ExecuteEffect{Contract: suitdrop.NewCondition("a", "bcd", nil).Address()}

	sub := suitdrop.NewSubMsg(eff)
	assert.Equal(t, suitdrop.ReplyNever, sub.ReplyOn)
	assert.Equal(t, "execute", sub.Effect.Kind())

	sub = suitdrop.ReplyOnSuccess(7, suitdrop.InstantiateEffect{CodeID: 3})
	assert.Equal(t, uint64(7), sub.ID)
	assert.Equal(t, "success", sub.ReplyOn.String())
	assert.Equal(t, "instantiate", sub.Effect.Kind())
}

func TestEvent(t *testing.T) {
	ev := suitdrop.NewEvent("wasm", "action", "claim", "address", "suit1", "dangling")
	assert.Equal(t, 2, len(ev.Attributes))

	tagged := ev.Add("amount", "25")
	assert.Equal(t, 2, len(ev.Attributes))
	assert.Equal(t, 3, len(tagged.Attributes))

	v, ok := tagged.Attr("amount")
	assert.Equal(t, true, ok)
	assert.Equal(t, "25", v)
	_, ok = ev.Attr("amount")
	assert.Equal(t, false, ok)
}
