package suitdrop

// Contract is the code of a program that the runtime can instantiate any
// number of times. Each instance operates on its own isolated store. The
// sender and the instance address are available from the context.
//
// Every entry point receives the raw JSON message as submitted.
type Contract interface {
	// Instantiate initializes the state of a new instance.
	Instantiate(ctx Context, db KVStore, msg []byte) (*DeliverResult, error)
	// Check validates an execute message without persisting anything.
	Check(ctx Context, db KVStore, msg []byte) (*CheckResult, error)
	// Execute handles an execute message.
	Execute(ctx Context, db KVStore, msg []byte) (*DeliverResult, error)
	// Query returns the JSON encoded answer to a read only request.
	Query(ctx Context, db ReadOnlyKVStore, msg []byte) ([]byte, error)
	// Migrate upgrades the state of an instance to this code.
	Migrate(ctx Context, db KVStore, msg []byte) (*DeliverResult, error)
}

// Replier is implemented by a contract that requests replies for its sub
// messages.
type Replier interface {
	Reply(ctx Context, db KVStore, reply Reply) (*DeliverResult, error)
}

// Querier executes read only requests against other contract instances.
type Querier interface {
	QueryContract(ctx Context, contract Address, msg []byte) ([]byte, error)
}
