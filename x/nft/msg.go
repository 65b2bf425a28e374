package nft

import (
	"encoding/json"
	"regexp"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/x"
)

var validTokenID = regexp.MustCompile(`^[\x21-\x7e]{1,256}$`).MatchString

func validateTokenID(id string) error {
	if !validTokenID(id) {
		return errors.Wrapf(ErrInvalidTokenID, "%q", id)
	}
	return nil
}

// InstantiateMsg declares the collection and its minter.
type InstantiateMsg struct {
	Name   string           `json:"name"`
	Symbol string           `json:"symbol"`
	Minter suitdrop.Address `json:"minter"`
}

// ExecuteMsg holds exactly one of the execute messages.
type ExecuteMsg struct {
	Mint        *MintMsg        `json:"mint,omitempty"`
	TransferNft *TransferNftMsg `json:"transfer_nft,omitempty"`
}

var _ suitdrop.Tx = (*ExecuteMsg)(nil)

func (m *ExecuteMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.Mint, m.TransferNft)
}

// DecodeExecuteMsg is the suitdrop.TxDecoder of the nft contract.
func DecodeExecuteMsg(raw []byte) (suitdrop.Tx, error) {
	var msg ExecuteMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MintMsg creates a new token. Only the minter can send it.
type MintMsg struct {
	TokenID   string           `json:"token_id"`
	Owner     suitdrop.Address `json:"owner"`
	TokenURI  string           `json:"token_uri,omitempty"`
	Extension json.RawMessage  `json:"extension,omitempty"`
}

var _ suitdrop.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string {
	return "mint"
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TokenID", validateTokenID(m.TokenID))
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

// TransferNftMsg moves a token owned by the sender to the recipient.
type TransferNftMsg struct {
	Recipient suitdrop.Address `json:"recipient"`
	TokenID   string           `json:"token_id"`
}

var _ suitdrop.Msg = (*TransferNftMsg)(nil)

func (TransferNftMsg) Path() string {
	return "transfer_nft"
}

func (m *TransferNftMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	errs = errors.AppendField(errs, "TokenID", validateTokenID(m.TokenID))
	return errs
}

// QueryMsg holds exactly one of the queries.
type QueryMsg struct {
	OwnerOf      *OwnerOfQuery      `json:"owner_of,omitempty"`
	NftInfo      *NftInfoQuery      `json:"nft_info,omitempty"`
	NumTokens    *NumTokensQuery    `json:"num_tokens,omitempty"`
	ContractInfo *ContractInfoQuery `json:"contract_info,omitempty"`
	AllTokens    *AllTokensQuery    `json:"all_tokens,omitempty"`
}

func (m *QueryMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.OwnerOf, m.NftInfo, m.NumTokens, m.ContractInfo, m.AllTokens)
}

type OwnerOfQuery struct {
	TokenID string `json:"token_id"`
}

func (OwnerOfQuery) Path() string { return "owner_of" }

func (q *OwnerOfQuery) Validate() error { return validateTokenID(q.TokenID) }

type OwnerOfResponse struct {
	Owner suitdrop.Address `json:"owner"`
}

type NftInfoQuery struct {
	TokenID string `json:"token_id"`
}

func (NftInfoQuery) Path() string { return "nft_info" }

func (q *NftInfoQuery) Validate() error { return validateTokenID(q.TokenID) }

type NftInfoResponse struct {
	TokenURI  string          `json:"token_uri,omitempty"`
	Extension json.RawMessage `json:"extension"`
}

type NumTokensQuery struct{}

func (NumTokensQuery) Path() string { return "num_tokens" }

func (*NumTokensQuery) Validate() error { return nil }

type NumTokensResponse struct {
	Count int64 `json:"count"`
}

type ContractInfoQuery struct{}

func (ContractInfoQuery) Path() string { return "contract_info" }

func (*ContractInfoQuery) Validate() error { return nil }

type ContractInfoResponse struct {
	Name   string           `json:"name"`
	Symbol string           `json:"symbol"`
	Minter suitdrop.Address `json:"minter"`
}

const (
	defaultLimit = 10
	maxLimit     = 30
)

// AllTokensQuery lists token ids in ascending order.
type AllTokensQuery struct {
	StartAfter string `json:"start_after,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

func (AllTokensQuery) Path() string { return "all_tokens" }

func (q *AllTokensQuery) Validate() error {
	if q.Limit < 0 {
		return errors.Field("Limit", errors.ErrInput, "negative")
	}
	return nil
}

// limit returns the number of ids to return, capped at maxLimit.
func (q *AllTokensQuery) limit() int {
	switch {
	case q.Limit == 0:
		return defaultLimit
	case q.Limit > maxLimit:
		return maxLimit
	default:
		return q.Limit
	}
}

type TokensResponse struct {
	Tokens []string `json:"tokens"`
}
