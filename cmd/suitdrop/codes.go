package main

import (
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/runtime"
	"github.com/iov-one/suitdrop/x/claim"
	"github.com/iov-one/suitdrop/x/nft"
	"github.com/iov-one/suitdrop/x/redeem"
	"github.com/iov-one/suitdrop/x/token"
)

// Code ids of the contracts available in the runtime. They must never
// change for an existing database.
const (
	TokenCode  uint64 = 1
	ClaimCode  uint64 = 2
	NftCode    uint64 = 3
	RedeemCode uint64 = 4
)

func registerCodes(rt *runtime.Runtime) error {
	codes := []struct {
		id   uint64
		code suitdrop.Contract
	}{
		{TokenCode, token.NewContract(runtime.Auth)},
		{ClaimCode, claim.NewContract(runtime.Auth)},
		{NftCode, nft.NewContract(runtime.Auth)},
		{RedeemCode, redeem.NewContract(runtime.Auth)},
	}
	for _, c := range codes {
		if err := rt.RegisterCode(c.id, c.code); err != nil {
			return errors.Wrapf(err, "register code %d", c.id)
		}
	}
	return nil
}
