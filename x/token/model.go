package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/coin"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/orm"
)

// Balance is the amount of tokens held by a single address.
type Balance struct {
	Amount coin.Amount
}

var _ orm.Model = (*Balance)(nil)

func (b *Balance) Validate() error {
	return nil
}

func (b *Balance) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Bytes(1, b.Amount.Bytes())
	return e.Result()
}

func (b *Balance) Unmarshal(raw []byte) error {
	*b = Balance{}
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
				b.Amount, err = coin.AmountFromBytes(raw)
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

// NewBalanceBucket returns a bucket holding balances indexed by the owner
// address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balance", &Balance{})
}

// Info describes a token instance.
type Info struct {
	Name        string
	Symbol      string
	Decimals    uint32
	TotalSupply coin.Amount
}

var (
	validName   = regexp.MustCompile(`^[\x20-\x7e]{3,50}$`).MatchString
	validSymbol = regexp.MustCompile(`^[a-zA-Z\-]{3,12}$`).MatchString
)

// MaxDecimals is the highest precision a token can declare.
const MaxDecimals = 18

func (i *Info) Validate() error {
	var errs error
	if !validName(i.Name) {
		errs = errors.AppendField(errs, "Name", errors.ErrModel)
	}
	if !validSymbol(i.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrModel)
	}
	if i.Decimals > MaxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.ErrModel)
	}
	return errs
}

func (i *Info) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, i.Name)
	e.String(2, i.Symbol)
	e.Uint64(3, uint64(i.Decimals))
	e.Bytes(4, i.TotalSupply.Bytes())
	return e.Result()
}

func (i *Info) Unmarshal(raw []byte) error {
	*i = Info{}
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
			i.Name, err = d.String()
		case 2:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			i.Symbol, err = d.String()
		case 3:
			if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
				return err
			}
			var n uint64
			if n, err = d.Uint64(); err == nil {
				i.Decimals = uint32(n)
			}
		case 4:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			var raw []byte
			if raw, err = d.Bytes(); err == nil {
				i.TotalSupply, err = coin.AmountFromBytes(raw)
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

// infoKey is the configuration key of the token metadata.
const infoKey = "token"
