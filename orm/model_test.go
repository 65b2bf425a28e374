package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
)

// counter is a model used only in tests.
type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Int64(1, c.Count)
	return e.Result()
}

func (c *counter) Unmarshal(raw []byte) error {
	*c = counter{}
	d := codec.NewDecoder(raw)
	for d.More() {
		field, wire, err := d.Key()
		if err != nil {
			return err
		}
		if field != 1 {
			if err := d.Skip(wire); err != nil {
				return err
			}
			continue
		}
		if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
			return err
		}
		if c.Count, err = d.Int64(); err != nil {
			return err
		}
	}
	return nil
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type otherModel struct {
	counter
}
