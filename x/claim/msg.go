package claim

import (
	"encoding/hex"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/merkle"
	"github.com/iov-one/suitdrop/x"
)

// parseAddress decodes an address provided by the sender.
func parseAddress(s string) (suitdrop.Address, error) {
	addr, err := suitdrop.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "address %q: %s", s, err)
	}
	return addr, nil
}

// decodeHash decodes a hex encoded tree node.
func decodeHash(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "hex: %s", err)
	}
	if len(raw) != merkle.HashSize {
		return nil, errors.Wrapf(ErrWrongLength, "%d bytes", len(raw))
	}
	return raw, nil
}

// InstantiateMsg configures the claim contract. The sender becomes the
// owner.
type InstantiateMsg struct {
	TokenAddress string      `json:"token_address"`
	ClaimAmount  coin.Amount `json:"claim_amount"`
}

// ExecuteMsg holds exactly one of the execute messages.
type ExecuteMsg struct {
	UpdateConfig       *UpdateConfigMsg       `json:"update_config,omitempty"`
	RegisterMerkleRoot *RegisterMerkleRootMsg `json:"register_merkle_root,omitempty"`
	Claim              *ClaimMsg              `json:"claim,omitempty"`
	WithdrawAll        *WithdrawAllMsg        `json:"withdraw_all,omitempty"`
}

var _ suitdrop.Tx = (*ExecuteMsg)(nil)

func (m *ExecuteMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.UpdateConfig, m.RegisterMerkleRoot, m.Claim, m.WithdrawAll)
}

// DecodeExecuteMsg is the suitdrop.TxDecoder of the claim contract.
func DecodeExecuteMsg(raw []byte) (suitdrop.Tx, error) {
	var msg ExecuteMsg
	if err := x.UnmarshalMsg(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateConfigMsg changes any of the configuration fields. Fields that are
// not provided are left unchanged.
type UpdateConfigMsg struct {
	Owner        string       `json:"owner,omitempty"`
	TokenAddress string       `json:"token_address,omitempty"`
	ClaimAmount  *coin.Amount `json:"claim_amount,omitempty"`
}

var _ suitdrop.Msg = (*UpdateConfigMsg)(nil)

func (UpdateConfigMsg) Path() string {
	return "update_config"
}

func (m *UpdateConfigMsg) Validate() error {
	var errs error
	if m.Owner != "" {
		_, err := parseAddress(m.Owner)
		errs = errors.AppendField(errs, "Owner", err)
	}
	if m.TokenAddress != "" {
		_, err := parseAddress(m.TokenAddress)
		errs = errors.AppendField(errs, "TokenAddress", err)
	}
	if m.ClaimAmount != nil && !m.ClaimAmount.IsPositive() {
		errs = errors.AppendField(errs, "ClaimAmount", errors.ErrAmount)
	}
	return errs
}

// RegisterMerkleRootMsg replaces the merkle root. No root disables
// claiming.
type RegisterMerkleRootMsg struct {
	Root string `json:"root,omitempty"`
}

var _ suitdrop.Msg = (*RegisterMerkleRootMsg)(nil)

func (RegisterMerkleRootMsg) Path() string {
	return "register_merkle_root"
}

func (m *RegisterMerkleRootMsg) Validate() error {
	if m.Root == "" {
		return nil
	}
	_, err := decodeHash(m.Root)
	return errors.Field("Root", err, "")
}

// ClaimMsg claims the airdrop for the sender.
type ClaimMsg struct {
	// Proof is the list of hex encoded sibling hashes, leaf to root.
	Proof []string `json:"proof"`
}

var _ suitdrop.Msg = (*ClaimMsg)(nil)

func (ClaimMsg) Path() string {
	return "claim"
}

// Validate accepts any proof. A malformed proof is reported only once the
// sender is known not to have claimed yet.
func (m *ClaimMsg) Validate() error {
	return nil
}

// WithdrawAllMsg sends the whole token balance of the contract to the owner.
type WithdrawAllMsg struct{}

var _ suitdrop.Msg = (*WithdrawAllMsg)(nil)

func (WithdrawAllMsg) Path() string {
	return "withdraw_all"
}

func (*WithdrawAllMsg) Validate() error {
	return nil
}

// QueryMsg holds exactly one of the queries.
type QueryMsg struct {
	Config     *ConfigQuery     `json:"config,omitempty"`
	MerkleRoot *MerkleRootQuery `json:"merkle_root,omitempty"`
	ClaimInfo  *ClaimInfoQuery  `json:"claim_info,omitempty"`
}

func (m *QueryMsg) GetMsg() (suitdrop.Msg, error) {
	return x.ExactlyOne(m.Config, m.MerkleRoot, m.ClaimInfo)
}

type ConfigQuery struct{}

func (ConfigQuery) Path() string { return "config" }

func (*ConfigQuery) Validate() error { return nil }

type ConfigResponse struct {
	Owner        suitdrop.Address `json:"owner"`
	TokenAddress suitdrop.Address `json:"token_address"`
	ClaimAmount  coin.Amount      `json:"claim_amount"`
}

type MerkleRootQuery struct{}

func (MerkleRootQuery) Path() string { return "merkle_root" }

func (*MerkleRootQuery) Validate() error { return nil }

type MerkleRootResponse struct {
	// Root is hex encoded, empty if never registered.
	Root string `json:"root"`
}

type ClaimInfoQuery struct {
	Address string `json:"address"`
}

func (ClaimInfoQuery) Path() string { return "claim_info" }

func (q *ClaimInfoQuery) Validate() error {
	_, err := parseAddress(q.Address)
	return err
}

type ClaimInfoResponse struct {
	Amount           coin.Amount       `json:"amount"`
	ClaimedTimestamp suitdrop.UnixTime `json:"claimed_timestamp"`
}
