/*
Package redeem implements the nft mint broker contract.

On instantiation the contract requests the creation of its own nft contract
instance, with itself as the minter, and asks for a reply once the instance
exists. The reply links the nft instance to the broker. Only then the owner
can mint tokens, each one getting the next id from a bounded counter.

	Uninitialized --reply(InstantiateReplyID)--> Ready

A linked broker never returns to the uninitialized state.
*/
package redeem
