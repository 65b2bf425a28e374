/*
Package token implements a fungible token contract.

Each holder has a balance stored in the "balance" bucket. Balances can be
transferred by their owner. The token metadata and the total supply are
fixed at instantiation.

Other contracts interact with a token instance through the messages and
helpers declared here: TransferEffect builds the effect paying out tokens
held by the calling contract and QueryBalance reads a balance of any holder.
*/
package token
