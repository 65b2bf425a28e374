package x_test

import (
	"testing"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/droptest"
	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/migration"
	"github.com/iov-one/suitdrop/store"
	"github.com/iov-one/suitdrop/x"
)

func TestExactlyOne(t *testing.T) {
	var missing *droptest.Msg
	a := &droptest.Msg{RoutePath: "a"}
	b := &droptest.Msg{RoutePath: "b"}

	cases := map[string]struct {
		msgs    []suitdrop.Msg
		want    suitdrop.Msg
		wantErr *errors.Error
	}{
		"one": {
			msgs: []suitdrop.Msg{missing, a, nil},
			want: a,
		},
		"none": {
			msgs:    []suitdrop.Msg{missing, nil},
			wantErr: errors.ErrMsg,
		},
		"two": {
			msgs:    []suitdrop.Msg{a, missing, b},
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := x.ExactlyOne(tc.msgs...)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestUnmarshalMsg(t *testing.T) {
	type msg struct {
		Name    string           `json:"name"`
		Address suitdrop.Address `json:"address"`
	}
	addr := droptest.NewCondition().Address()

	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
	}{
		"valid": {
			raw: `{"name": "x", "address": "` + addr.String() + `"}`,
		},
		"unknown field": {
			raw:     `{"name": "x", "other": 1}`,
			wantErr: errors.ErrMsg,
		},
		"invalid address": {
			raw:     `{"address": "suit1qqqq"}`,
			wantErr: errors.ErrInput,
		},
		"not json": {
			raw:     `name=x`,
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var m msg
			assert.IsErr(t, tc.wantErr, x.UnmarshalMsg([]byte(tc.raw), &m))
		})
	}
}

func TestMigrate(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, migration.SetContractVersion(db, "suitdrop-claim", "0.1.0"))

	res, err := x.Migrate(db, []byte(`{}`), "suitdrop-claim", "0.2.0")
	assert.Nil(t, err)
	v, _ := res.Events[0].Attr("from_version")
	assert.Equal(t, "0.1.0", v)

	_, err = x.Migrate(db, []byte(`{"unexpected": true}`), "suitdrop-claim", "0.3.0")
	assert.IsErr(t, errors.ErrMsg, err)

	_, err = x.Migrate(db, nil, "suitdrop-nft", "0.3.0")
	assert.IsErr(t, migration.ErrContractMismatch, err)
}
