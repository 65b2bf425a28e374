/*
Package migration keeps track of the code that owns the state of a contract
instance.

Each contract instance stores a single ContractVersion record: the name of
the contract code and the version of that code that last wrote the state.
The record is created when an instance is initialized and updated on every
migration. A migration is refused when the stored contract name differs from
the name of the code that is migrating the state.
*/
package migration
