/*
Package suitdrop defines the common interfaces shared by the contract
extensions, the host runtime and the supporting packages.

A contract is a set of entry points (instantiate, execute, query, migrate and
an optional reply callback) that operate on an isolated key value store. A
contract never calls another contract directly. Instead it returns effects
alongside its result and the host runtime executes them after the contract
returns, within the same atomic unit.

We pass context through context.Context between the runtime, decorators and
handlers. There should exist two functions for every XYZ of type T that we
want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level modules
overwriting the value (eg. block info).
*/
package suitdrop
