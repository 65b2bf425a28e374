package claim

import (
	"fmt"
	"testing"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/droptest"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/merkle"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAirdropLifecycle(t *testing.T) {
	Convey("Given a funded claim contract and an airdrop of three accounts", t, func() {
		e := newEnv(t, "25")
		e.setBalance("75")

		accounts := []suitdrop.Address{
			droptest.NewCondition().Address(),
			droptest.NewCondition().Address(),
			droptest.NewCondition().Address(),
		}
		leaves := make([][]byte, len(accounts))
		for i, a := range accounts {
			leaves[i] = []byte(a.String())
		}
		tree, err := merkle.NewTree(leaves)
		So(err, ShouldBeNil)

		_, err = e.execute(e.owner, registerRootMsg(tree.Root()))
		So(err, ShouldBeNil)

		Convey("Every account claims exactly once", func() {
			for _, a := range accounts {
				proof, err := tree.Proof([]byte(a.String()))
				So(err, ShouldBeNil)

				res, err := e.execute(a, claimMsg(proof...))
				So(err, ShouldBeNil)
				So(res.Effects, ShouldHaveLength, 1)

				_, err = e.execute(a, claimMsg(proof...))
				So(ErrClaimed.Is(err), ShouldBeTrue)
			}

			var info ClaimInfoResponse
			e.query(t, fmt.Sprintf(`{"claim_info": {"address": %q}}`, accounts[1]), &info)
			So(info.Amount.String(), ShouldEqual, "25")
		})

		Convey("Rotating the root invalidates old proofs", func() {
			newcomer := droptest.NewCondition().Address()
			_, err := e.execute(e.owner, registerRootMsg(leaf(newcomer)))
			So(err, ShouldBeNil)

			proof, err := tree.Proof([]byte(accounts[0].String()))
			So(err, ShouldBeNil)
			_, err = e.execute(accounts[0], claimMsg(proof...))
			So(ErrVerificationFailed.Is(err), ShouldBeTrue)

			_, err = e.execute(newcomer, claimMsg())
			So(err, ShouldBeNil)
		})

		Convey("Clearing the root disables claiming", func() {
			_, err := e.execute(e.owner, `{"register_merkle_root": {}}`)
			So(err, ShouldBeNil)

			proof, err := tree.Proof([]byte(accounts[2].String()))
			So(err, ShouldBeNil)
			_, err = e.execute(accounts[2], claimMsg(proof...))
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("A new owner takes over the owner only messages", func() {
			next := droptest.NewCondition().Address()
			_, err := e.execute(e.owner, fmt.Sprintf(`{"update_config": {"owner": %q}}`, next))
			So(err, ShouldBeNil)

			_, err = e.execute(e.owner, `{"withdraw_all": {}}`)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			res, err := e.execute(next, `{"withdraw_all": {}}`)
			So(err, ShouldBeNil)
			So(res.Effects, ShouldHaveLength, 1)
		})
	})
}
