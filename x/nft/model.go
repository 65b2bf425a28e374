package nft

import (
	"encoding/json"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/orm"
)

// Config holds the contract metadata and the only address allowed to mint.
type Config struct {
	Name   string
	Symbol string
	Minter suitdrop.Address
}

const configKey = "nft"

var validSymbol = regexp.MustCompile(`^[a-zA-Z0-9\-]{1,32}$`).MatchString

func (c *Config) Validate() error {
	var errs error
	if n := len(c.Name); n == 0 || n > 128 {
		errs = errors.AppendField(errs, "Name", errors.ErrModel)
	}
	if !validSymbol(c.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrModel)
	}
	errs = errors.AppendField(errs, "Minter", c.Minter.Validate())
	return errs
}

func (c *Config) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, c.Name)
	e.String(2, c.Symbol)
	e.Bytes(3, c.Minter)
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
		case 1:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			c.Name, err = d.String()
		case 2:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			c.Symbol, err = d.String()
		case 3:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			c.Minter, err = d.Bytes()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Token is a single non fungible token.
type Token struct {
	Owner    suitdrop.Address
	TokenURI string
	// Extension is the JSON encoded metadata of the token, if any.
	Extension json.RawMessage
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	if len(t.Extension) != 0 && !json.Valid(t.Extension) {
		errs = errors.AppendField(errs, "Extension", errors.ErrModel)
	}
	return errs
}

func (t *Token) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, t.Owner)
	e.String(2, t.TokenURI)
	e.Bytes(3, t.Extension)
	return e.Result()
}

func (t *Token) Unmarshal(raw []byte) error {
	*t = Token{}
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
			t.Owner, err = d.Bytes()
		case 2:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			t.TokenURI, err = d.String()
		case 3:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			t.Extension, err = d.Bytes()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// NewTokenBucket returns a bucket holding tokens indexed by their id.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens", &Token{})
}

// NewTokenCount returns the sequence counting minted tokens.
func NewTokenCount() orm.Sequence {
	return orm.NewSequence("tokens", "count")
}
