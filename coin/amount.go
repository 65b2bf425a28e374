/*
Package coin implements the fungible token amount type.

Amount is an unsigned integer limited to 128 bits. In JSON it is always
represented as a decimal string, so that clients written in languages without
native big integers never lose precision.
*/
package coin

import (
	"encoding/json"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/iov-one/suitdrop/errors"
)

// MaxBits is the size limit of an amount.
const MaxBits = 128

// Amount is a non negative token amount. Zero value is a valid zero amount.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount of given value.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// ParseAmount decodes the decimal representation of an amount.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if s == "" {
		return a, errors.Wrap(errors.ErrAmount, "empty")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return a, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	if v.BitLen() > MaxBits {
		return a, errors.Wrapf(errors.ErrOverflow, "%q exceeds %d bits", s, MaxBits)
	}
	a.v = *v
	return a, nil
}

// MustParseAmount is ParseAmount that panics on error. Use it only for
// constant values.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the decimal representation.
func (a Amount) String() string {
	return a.v.Dec()
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// IsPositive returns true if the value is greater than 0.
func (a Amount) IsPositive() bool {
	return !a.v.IsZero()
}

// Compare returns 1 if a is larger, -1 if o is larger, 0 if equal.
func (a Amount) Compare(o Amount) int {
	return a.v.Cmp(&o.v)
}

// Equals returns true if both amounts have the same value.
func (a Amount) Equals(o Amount) bool {
	return a.v.Eq(&o.v)
}

// IsGTE returns true if a is at least as large as o.
func (a Amount) IsGTE(o Amount) bool {
	return a.Compare(o) >= 0
}

// Add returns the sum of both amounts, or ErrOverflow if the result does
// not fit in MaxBits.
func (a Amount) Add(o Amount) (Amount, error) {
	var res Amount
	if _, overflow := res.v.AddOverflow(&a.v, &o.v); overflow || res.v.BitLen() > MaxBits {
		return Amount{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", a, o)
	}
	return res, nil
}

// Subtract returns a - o, or ErrAmount if o is larger than a.
func (a Amount) Subtract(o Amount) (Amount, error) {
	var res Amount
	if _, underflow := res.v.SubOverflow(&a.v, &o.v); underflow {
		return Amount{}, errors.Wrapf(errors.ErrAmount, "%s - %s is negative", a, o)
	}
	return res, nil
}

// Bytes returns the big endian representation without leading zeros. Zero
// is represented by no bytes.
func (a Amount) Bytes() []byte {
	if a.v.IsZero() {
		return nil
	}
	return a.v.Bytes()
}

// AmountFromBytes decodes the representation returned by Bytes.
func AmountFromBytes(raw []byte) (Amount, error) {
	var a Amount
	if len(raw) > MaxBits/8 {
		return a, errors.Wrapf(errors.ErrOverflow, "%d bytes", len(raw))
	}
	a.v.SetBytes(raw)
	return a, nil
}

// MarshalJSON encodes the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a decimal string. A plain JSON number is accepted
// as well, as long as it is an integer.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrapf(errors.ErrAmount, "cannot decode json: %s", err)
		}
		if _, err := strconv.ParseUint(n.String(), 10, 64); err != nil {
			return errors.Wrapf(errors.ErrAmount, "invalid number %s", n)
		}
		s = n.String()
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
