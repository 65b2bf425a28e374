package claim

import (
	"encoding/hex"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/merkle"
	"github.com/iov-one/suitdrop/orm"
)

const (
	configKey = "claim"
	rootKey   = "merkle_root"
)

// Config is the claim contract configuration.
type Config struct {
	Owner        suitdrop.Address
	TokenAddress suitdrop.Address
	// ClaimAmount is paid out to every account that claims.
	ClaimAmount coin.Amount
}

func (c *Config) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "TokenAddress", c.TokenAddress.Validate())
	if !c.ClaimAmount.IsPositive() {
		errs = errors.AppendField(errs, "ClaimAmount", errors.ErrAmount)
	}
	return errs
}

func (c *Config) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, c.Owner)
	e.Bytes(2, c.TokenAddress)
	e.Bytes(3, c.ClaimAmount.Bytes())
	return e.Result()
}

func (c *Config) Unmarshal(raw []byte) error {
	*c = Config{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, wire, err := d.Key()
		if err != nil {
			return err
		}
		if field >= 1 && field <= 3 {
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
		}
		switch field {
		case 1:
			c.Owner, err = d.Bytes()
		case 2:
			c.TokenAddress, err = d.Bytes()
		case 3:
			var raw []byte
			if raw, err = d.Bytes(); err == nil {
				c.ClaimAmount, err = coin.AmountFromBytes(raw)
			}
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MerkleRoot is the root all claim proofs are verified against. An empty
// root disables claiming.
type MerkleRoot struct {
	Root []byte
}

func (m *MerkleRoot) Validate() error {
	if n := len(m.Root); n != 0 && n != merkle.HashSize {
		return errors.Wrapf(ErrWrongLength, "root of %d bytes", n)
	}
	return nil
}

func (m *MerkleRoot) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, m.Root)
	return e.Result()
}

func (m *MerkleRoot) Unmarshal(raw []byte) error {
	*m = MerkleRoot{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, wire, err := d.Key()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			m.Root, err = d.Bytes()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Hex returns the hex encoded root, empty if no root is set.
func (m *MerkleRoot) Hex() string {
	return hex.EncodeToString(m.Root)
}

// ClaimInfo is the record of a successful claim. Its presence marks the
// account as claimed.
type ClaimInfo struct {
	Amount           coin.Amount
	ClaimedTimestamp suitdrop.UnixTime
}

var _ orm.Model = (*ClaimInfo)(nil)

func (c *ClaimInfo) Validate() error {
	return errors.Field("ClaimedTimestamp", c.ClaimedTimestamp.Validate(), "")
}

func (c *ClaimInfo) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, c.Amount.Bytes())
	e.Int64(2, int64(c.ClaimedTimestamp))
	return e.Result()
}

func (c *ClaimInfo) Unmarshal(raw []byte) error {
	*c = ClaimInfo{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, wire, err := d.Key()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			var raw []byte
			if raw, err = d.Bytes(); err == nil {
				c.Amount, err = coin.AmountFromBytes(raw)
			}
		case 2:
			if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
				return err
			}
			var ts int64
			if ts, err = d.Int64(); err == nil {
				c.ClaimedTimestamp = suitdrop.UnixTime(ts)
			}
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// NewClaimBucket returns a bucket holding claim records indexed by the
// claimant address.
func NewClaimBucket() orm.ModelBucket {
	return orm.NewModelBucket("claim", &ClaimInfo{})
}
