package suitdrop

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/suitdrop/crypto/bech32"
	"github.com/iov-one/suitdrop/errors"
)

var (
	// AddressLength is the size of every address. Changing it breaks all
	// stored addresses.
	AddressLength = 20

	// AddressPrefix is the bech32 human readable part of addresses. Claim
	// proofs commit to the bech32 string, so it must never change for a
	// running chain.
	AddressPrefix = "suit"

	// (?s) lets the data section contain newlines.
	conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)
)

// Condition describes who can authorize an action, in the form
// "<extension>/<type>/<data>". A signer is identified by the address of
// its condition.
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext+"/"+typ+"/"...)
	return append(c, data...)
}

// Parse splits the condition into its extension, type and data.
func (c Condition) Parse() (ext, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String prints the data section in hex.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Address identifies an account or a contract instance.
type Address []byte

// NewAddress returns the truncated sha256 digest of data.
func NewAddress(data []byte) Address {
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

// ParseAddress decodes an address from its bech32 form, or from a "hex:"
// prefixed form.
func ParseAddress(enc string) (Address, error) {
	var (
		raw []byte
		err error
	)
	if h := strings.TrimPrefix(enc, "hex:"); h != enc {
		if raw, err = hex.DecodeString(h); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "hex address: %s", err)
		}
	} else {
		var hrp string
		if hrp, raw, err = bech32.Decode(enc); err != nil {
			return nil, errors.Wrapf(err, "address %q", enc)
		}
		if hrp != AddressPrefix {
			return nil, errors.Wrapf(errors.ErrInput, "address prefix %q, want %q", hrp, AddressPrefix)
		}
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

func (a Address) Validate() error {
	switch len(a) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case AddressLength:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "address length %d, want %d", len(a), AddressLength)
	}
}

// String returns the bech32 form, or "(nil)" for an empty address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	enc, err := bech32.Encode(AddressPrefix, a)
	if err != nil {
		// Only an invalid prefix fails the encoding.
		panic(err)
	}
	return enc
}

// MarshalJSON encodes the address as a bech32 string. An empty address is
// an empty string.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrapf(errors.ErrInput, "address json: %s", err)
	}
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
