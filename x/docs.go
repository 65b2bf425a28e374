/*
Package x contains the building blocks shared by all contracts.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct a contract.

All sub-packages are either contracts (claim, redeem, token, nft) or
decorators (utils). Authentication is provided by the runtime through the
Authenticator interface, so that contracts never depend on how a sender was
authenticated.
*/
package x
