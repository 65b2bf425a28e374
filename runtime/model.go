package runtime

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/orm"
	"golang.org/x/crypto/blake2b"
)

// ContractInfo describes a contract instance.
type ContractInfo struct {
	CodeID  uint64
	Creator suitdrop.Address
	// Admin can migrate the instance. An instance without an admin cannot
	// be migrated.
	Admin suitdrop.Address
	Label string
}

var _ orm.Model = (*ContractInfo)(nil)

func (c *ContractInfo) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Creator", c.Creator.Validate())
	if len(c.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	}
	if len(c.Label) > 128 {
		errs = errors.AppendField(errs, "Label", errors.ErrInput)
	}
	return errs
}

func (c *ContractInfo) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, c.CodeID)
	e.Bytes(2, c.Creator)
	e.Bytes(3, c.Admin)
	e.String(4, c.Label)
	return e.Result()
}

func (c *ContractInfo) Unmarshal(raw []byte) error {
	*c = ContractInfo{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, wire, err := d.Key()
		if err != nil {
			return err
		}
		switch field {
		case 1:
			if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
				return err
			}
			c.CodeID, err = d.Uint64()
		case 2:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			c.Creator, err = d.Bytes()
		case 3:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			c.Admin, err = d.Bytes()
		case 4:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			c.Label, err = d.String()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// NewContractBucket returns a bucket holding instance information indexed
// by the instance address.
func NewContractBucket() orm.ModelBucket {
	return orm.NewModelBucket("contract", &ContractInfo{})
}

// NewInstanceSequence returns the sequence used to derive instance
// addresses.
func NewInstanceSequence() orm.Sequence {
	return orm.NewSequence("contract", "instance")
}

// ContractAddress returns the address of the n-th instance created by the
// runtime, for given code.
func ContractAddress(codeID uint64, n int64) suitdrop.Address {
	buf := make([]byte, 0, len("contract")+16)
	buf = append(buf, "contract"...)
	buf = appendUint64(buf, codeID)
	buf = appendUint64(buf, uint64(n))
	h := blake2b.Sum256(buf)
	return suitdrop.Address(h[:suitdrop.AddressLength])
}

func appendUint64(b []byte, v uint64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], v)
	return append(b, raw[:]...)
}

// instancePrefix is the store prefix of the state of a contract instance.
func instancePrefix(addr suitdrop.Address) []byte {
	p := make([]byte, 0, 2+len(addr))
	p = append(p, "i:"...)
	return append(p, addr...)
}
