package runtime

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/errors"
)

const (
	// configPkg is the name of the runtime configuration in the genesis
	// "conf" section and in the store.
	configPkg = "runtime"

	// DefaultMaxDepth is used when the genesis does not configure the
	// runtime.
	DefaultMaxDepth = 10

	maxMaxDepth = 64
)

// Config is the runtime configuration.
type Config struct {
	// MaxDepth limits the nesting of effects. A message handler runs at
	// depth zero, its effects at depth one and so on.
	MaxDepth uint32 `json:"max_depth"`
}

func (c *Config) Validate() error {
	if c.MaxDepth == 0 || c.MaxDepth > maxMaxDepth {
		return errors.Field("MaxDepth", errors.ErrModel, "must be between 1 and %d", maxMaxDepth)
	}
	return nil
}

func (c *Config) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.Uint64(1, uint64(c.MaxDepth))
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
			if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
				return err
			}
			var n uint64
			if n, err = d.Uint64(); err == nil {
				c.MaxDepth = uint32(n)
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
