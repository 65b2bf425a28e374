package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/codec"
	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/store"
)

type testConf struct {
	Name  string `json:"name"`
	Limit uint64 `json:"limit"`
}

func (c *testConf) Validate() error {
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func (c *testConf) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	e.String(1, c.Name)
	e.Uint64(2, c.Limit)
	return e.Result()
}

func (c *testConf) Unmarshal(raw []byte) error {
	*c = testConf{}
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
			if err := codec.Expect(field, wire, proto.WireVarint); err != nil {
				return err
			}
			c.Limit, err = d.Uint64()
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *testConf
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"valid": {
			Conf: &testConf{Name: "foobar", Limit: 852151421},
		},
		"zero limit": {
			Conf: &testConf{Name: "foobar"},
		},
		"invalid configuration cannot be saved": {
			Conf:        &testConf{Limit: 4},
			WantSaveErr: errors.ErrEmpty,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "test", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			var got testConf
			if err := Load(db, "test", &got); !tc.WantLoadErr.Is(err) {
				t.Fatalf("unexpected load error: %s", err)
			}
			if tc.WantLoadErr == nil {
				assert.Equal(t, *tc.Conf, got)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	raw, err := json.Marshal(map[string]interface{}{
		"test": map[string]interface{}{"name": "genesis", "limit": 3},
	})
	assert.Nil(t, err)

	db := store.MemStore()
	opts := suitdrop.Options{"conf": raw}
	assert.Nil(t, InitConfig(db, opts, "test", &testConf{}))

	var got testConf
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, testConf{Name: "genesis", Limit: 3}, got)

	err = InitConfig(db, opts, "missing", &testConf{})
	assert.IsErr(t, errors.ErrNotFound, err)
}
