package migration

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
)

// ContractVersion describes the code that owns the state of a contract
// instance.
type ContractVersion struct {
	// Contract is the name of the contract code, for example
	// "suitdrop-claim".
	Contract string `json:"contract"`
	// Version is the version of the code that last wrote the state.
	Version string `json:"version"`
}

var (
	validContract = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{1,63}$`).MatchString
	validVersion  = regexp.MustCompile(`^[0-9A-Za-z.\-+]{1,32}$`).MatchString
)

func (v *ContractVersion) Validate() error {
	var errs error
	if !validContract(v.Contract) {
		errs = errors.AppendField(errs, "Contract", errors.ErrModel)
	}
	if !validVersion(v.Version) {
		errs = errors.AppendField(errs, "Version", errors.ErrModel)
	}
	return errs
}

func (v *ContractVersion) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, v.Contract)
	e.String(2, v.Version)
	return e.Result()
}

func (v *ContractVersion) Unmarshal(raw []byte) error {
	*v = ContractVersion{}
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
			v.Contract, err = d.String()
		case 2:
			if err := codec.Expect(field, wire, proto.WireBytes); err != nil {
				return err
			}
			v.Version, err = d.String()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
