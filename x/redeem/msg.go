package redeem

import (
	"encoding/json"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/x"
)

// InstantiateMsg configures the broker and the nft contract it creates.
type InstantiateMsg struct {
	Owner     suitdrop.Address `json:"owner"`
	MaxTokens uint64           `json:"max_tokens"`
	Name      string           `json:"name"`
	Symbol    string           `json:"symbol"`
	// TokenCodeID is the code of the nft contract to instantiate.
	TokenCodeID uint64 `json:"token_code_id"`
}

func (m *InstantiateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.MaxTokens == 0 {
		errs = errors.AppendField(errs, "MaxTokens", ErrInvalidMaxTokens)
	}
	if m.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if m.Symbol == "" {
		errs = errors.AppendField(errs, "Symbol", errors.ErrEmpty)
	}
	return errs
}

// ExecuteMsg holds exactly one of the execute messages.
type ExecuteMsg struct {
	Mint *MintMsg `json:"mint,omitempty"`
}

var _ suitdrop.Tx = (*ExecuteMsg)(nil)

func (m *ExecuteMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.Mint)
}

// DecodeExecuteMsg is the suitdrop.TxDecoder of the redeem contract.
func DecodeExecuteMsg(raw []byte) (suitdrop.Tx, error) {
	var msg ExecuteMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MintMsg mints the next token to the sender.
type MintMsg struct {
	URI       string          `json:"uri"`
	Extension json.RawMessage `json:"extension,omitempty"`
}

var _ suitdrop.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string {
	return "mint"
}

func (m *MintMsg) Validate() error {
	if len(m.Extension) != 0 && !json.Valid(m.Extension) {
		return errors.Field("Extension", errors.ErrInput, "invalid json")
	}
	return nil
}

// QueryMsg holds exactly one of the queries.
type QueryMsg struct {
	GetConfig *GetConfigQuery `json:"get_config,omitempty"`
}

func (m *QueryMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.GetConfig)
}

type GetConfigQuery struct{}

func (GetConfigQuery) Path() string { return "get_config" }

func (*GetConfigQuery) Validate() error { return nil }

type ConfigResponse struct {
	Owner        suitdrop.Address `json:"owner"`
	ChildAddress suitdrop.Address `json:"child_address,omitempty"`
	MaxTokens    uint64           `json:"max_tokens"`
	Name         string           `json:"name"`
	Symbol       string           `json:"symbol"`
	NextTokenID  uint64           `json:"next_token_id"`
}
