package token

import (
	"fmt"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/x"
)

// InstantiateMsg creates a token with an initial distribution of tokens.
type InstantiateMsg struct {
	Name            string           `json:"name"`
	Symbol          string           `json:"symbol"`
	Decimals        uint32           `json:"decimals"`
	InitialBalances []InitialBalance `json:"initial_balances"`
}

type InitialBalance struct {
	Address suitdrop.Address `json:"address"`
	Amount  coin.Amount      `json:"amount"`
}

func (m *InstantiateMsg) Validate() error {
	var errs error
	for i, b := range m.InitialBalances {
		if err := b.Address.Validate(); err != nil {
			errs = errors.AppendField(errs, fmt.Sprintf("InitialBalances.%d.Address", i), err)
		}
	}
	return errs
}

// ExecuteMsg holds exactly one of the execute messages.
type ExecuteMsg struct {
	Transfer *TransferMsg `json:"transfer,omitempty"`
}

var _ suitdrop.Tx = (*ExecuteMsg)(nil)

func (m *ExecuteMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.Transfer)
}

// DecodeExecuteMsg is the suitdrop.TxDecoder of the token contract.
func DecodeExecuteMsg(raw []byte) (suitdrop.Tx, error) {
	var msg ExecuteMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// TransferMsg moves tokens from the sender to the recipient.
type TransferMsg struct {
	Recipient suitdrop.Address `json:"recipient"`
	Amount    coin.Amount      `json:"amount"`
}

var _ suitdrop.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return "transfer"
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// QueryMsg holds exactly one of the queries.
type QueryMsg struct {
	Balance   *BalanceQuery   `json:"balance,omitempty"`
	TokenInfo *TokenInfoQuery `json:"token_info,omitempty"`
}

func (m *QueryMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.Balance, m.TokenInfo)
}

// BalanceQuery returns the balance of an address.
type BalanceQuery struct {
	Address suitdrop.Address `json:"address"`
}

func (BalanceQuery) Path() string {
	return "balance"
}

func (q *BalanceQuery) Validate() error {
	return errors.Field("Address", q.Address.Validate(), "")
}

type BalanceResponse struct {
	Balance coin.Amount `json:"balance"`
}

// TokenInfoQuery returns the token metadata.
type TokenInfoQuery struct{}

func (TokenInfoQuery) Path() string {
	return "token_info"
}

func (*TokenInfoQuery) Validate() error {
	return nil
}

type TokenInfoResponse struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    uint32      `json:"decimals"`
	TotalSupply coin.Amount `json:"total_supply"`
}
