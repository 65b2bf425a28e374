/*
Package nft implements a non fungible token contract.

Tokens are created by the minter declared at instantiation and can later be
transferred by their owner. Each token carries a URI and an arbitrary JSON
extension with its metadata.
*/
package nft
