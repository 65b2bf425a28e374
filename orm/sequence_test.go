package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket     string
		name       string
		init       int64
		increments int64
	}{
		0: {"a", "id", 0, 22},
		1: {"a", "other", 0, 11},
		2: {"a", "id", 23, 18},
		3: {"b", "id", 0, 77},
		4: {"a", "other", 12, 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			orig, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.init, orig)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.init+tc.increments, val)

			// Raw bytes must sort the same way numbers do.
			next, err := s.NextVal(db)
			assert.Nil(t, err)
			if bytes.Compare(next, EncodeSequence(val)) != 1 {
				t.Fatalf("%X is not greater than %X", next, EncodeSequence(val))
			}
		})
	}
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), v)

	v, err = DecodeSequence(EncodeSequence(1 << 40))
	assert.Nil(t, err)
	assert.Equal(t, int64(1<<40), v)

	_, err = DecodeSequence([]byte{1, 2, 3})
	assert.IsErr(t, errors.ErrState, err)
}
