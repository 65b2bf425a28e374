package token

import (
	"encoding/json"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
)

// TransferEffect returns a sub message that transfers tokens held by the
// emitting contract to the recipient.
func TransferEffect(token, recipient suitdrop.Address, amount coin.Amount) (suitdrop.SubMsg, error) {
	raw, err := json.Marshal(ExecuteMsg{
		Transfer: &TransferMsg{Recipient: recipient, Amount: amount},
	})
	if err != nil {
		return suitdrop.SubMsg{}, errors.Wrapf(errors.ErrCodec, "transfer: %s", err)
	}
	return suitdrop.NewSubMsg(suitdrop.ExecuteEffect{Contract: token, Msg: raw}), nil
}

// QueryBalance returns the balance of holder in the token instance, using
// the querier from the context.
func QueryBalance(ctx suitdrop.Context, token, holder suitdrop.Address) (coin.Amount, error) {
	querier, ok := suitdrop.GetQuerier(ctx)
	if !ok {
		return coin.Amount{}, errors.Wrap(errors.ErrHuman, "no querier in context")
	}
	raw, err := json.Marshal(QueryMsg{Balance: &BalanceQuery{Address: holder}})
	if err != nil {
		return coin.Amount{}, errors.Wrapf(errors.ErrCodec, "balance query: %s", err)
	}
	res, err := querier.QueryContract(ctx, token, raw)
	if err != nil {
		return coin.Amount{}, errors.Wrapf(err, "query token %s", token)
	}
	var resp BalanceResponse
	if err := json.Unmarshal(res, &resp); err != nil {
		return coin.Amount{}, errors.Wrapf(errors.ErrCodec, "balance response: %s", err)
	}
	return resp.Balance, nil
}
