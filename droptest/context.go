package droptest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ChainID is used by all contexts created by this package.
const ChainID = "droptest-chain"

// BlockContext returns a context with a block of given height and time.
func BlockContext(height int64, now time.Time) suitdrop.Context {
	info, err := suitdrop.NewBlockInfo(abci.Header{Height: height, Time: now}, ChainID)
	if err != nil {
		panic(err)
	}
	return suitdrop.WithBlockInfo(context.Background(), info)
}

// Querier is a mock implementation of the suitdrop.Querier interface. It
// answers with a JSON encoded response registered for the queried contract,
// regardless of the query content.
type Querier struct {
	// Responses maps the bech32 contract address to the response value.
	Responses map[string]interface{}
	// Err if set is returned for every query.
	Err error

	calls int
}

var _ suitdrop.Querier = (*Querier)(nil)

func (q *Querier) QueryContract(ctx suitdrop.Context, contract suitdrop.Address, msg []byte) ([]byte, error) {
	q.calls++
	if q.Err != nil {
		return nil, q.Err
	}
	res, ok := q.Responses[contract.String()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "contract %s", contract)
	}
	return json.Marshal(res)
}

// CallCount returns the number of queries made.
func (q *Querier) CallCount() int {
	return q.calls
}
