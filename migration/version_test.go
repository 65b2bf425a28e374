package migration

import (
	"testing"

	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/store"
)

func TestContractVersionLifecycle(t *testing.T) {
	db := store.MemStore()

	_, err := GetContractVersion(db)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = Upgrade(db, "suitdrop-claim", "0.2.0")
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, SetContractVersion(db, "suitdrop-claim", "0.1.0"))
	v, err := GetContractVersion(db)
	assert.Nil(t, err)
	assert.Equal(t, &ContractVersion{Contract: "suitdrop-claim", Version: "0.1.0"}, v)

	prev, err := Upgrade(db, "suitdrop-claim", "0.2.0")
	assert.Nil(t, err)
	assert.Equal(t, "0.1.0", prev.Version)
	v, err = GetContractVersion(db)
	assert.Nil(t, err)
	assert.Equal(t, "0.2.0", v.Version)

	_, err = Upgrade(db, "suitdrop-redeem", "0.3.0")
	assert.IsErr(t, ErrContractMismatch, err)
}

func TestContractVersionValidate(t *testing.T) {
	cases := map[string]struct {
		v         ContractVersion
		wantField string
	}{
		"valid": {
			v: ContractVersion{Contract: "suitdrop-nft", Version: "1.0.0-dev"},
		},
		"missing contract": {
			v:         ContractVersion{Version: "1.0.0"},
			wantField: "Contract",
		},
		"invalid version": {
			v:         ContractVersion{Contract: "suitdrop-nft", Version: "one two"},
			wantField: "Version",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.v.Validate()
			if tc.wantField == "" {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, errors.ErrModel)
		})
	}
}
