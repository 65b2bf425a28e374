package redeem

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
)

const configKey = "redeem"

// Config is the state of the broker.
type Config struct {
	Owner suitdrop.Address
	// NftAddress is the linked nft contract instance. It is empty until the
	// instantiation reply is handled.
	NftAddress suitdrop.Address
	MaxTokens  uint64
	Name       string
	Symbol     string
	// NextTokenID is the id of the next minted token. It starts at 1.
	NextTokenID uint64
}

func (c *Config) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if len(c.NftAddress) != 0 {
		errs = errors.AppendField(errs, "NftAddress", c.NftAddress.Validate())
	}
	if c.MaxTokens == 0 {
		errs = errors.AppendField(errs, "MaxTokens", ErrInvalidMaxTokens)
	}
	if c.NextTokenID == 0 {
		errs = errors.AppendField(errs, "NextTokenID", errors.ErrModel)
	}
	return errs
}

// Linked returns true once the nft contract instance is known.
func (c *Config) Linked() bool {
	return len(c.NftAddress) != 0
}

func (c *Config) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, c.Owner)
	e.Bytes(2, c.NftAddress)
	e.Uint64(3, c.MaxTokens)
	e.String(4, c.Name)
	e.String(5, c.Symbol)
	e.Uint64(6, c.NextTokenID)
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
		switch field {
		case 1, 2, 4, 5:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
		case 3, 6:
			if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
				return err
			}
		}
		switch field {
		case 1:
			c.Owner, err = d.Bytes()
		case 2:
			c.NftAddress, err = d.Bytes()
		case 3:
			c.MaxTokens, err = d.Uint64()
		case 4:
			c.Name, err = d.String()
		case 5:
			c.Symbol, err = d.String()
		case 6:
			c.NextTokenID, err = d.Uint64()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
