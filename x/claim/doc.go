/*
Package claim implements the airdrop claim contract.

The contract holds a balance of a fungible token. An account listed in the
airdrop can claim a fixed amount of that token once, proving its membership
with a merkle proof against the root registered by the owner.

Proof verification pairs nodes in ascending byte order before hashing, so a
proof is only a list of sibling hashes. The leaf of an account is the sha256
of its bech32 address.
*/
package claim
