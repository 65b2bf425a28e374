package orm

import (
	"encoding/binary"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
)

const sequenceSize = 8

// Sequence is a persisted counter. The first value it returns is 1 and the
// encoded values sort the same way as the numbers.
type Sequence struct {
	key []byte
}

// NewSequence returns the counter stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextInt increments the counter and returns the new value.
func (s *Sequence) NextInt(db suitdrop.KVStore) (int64, error) {
	return s.next(db)
}

// NextVal is NextInt returning the encoded value, usable as a key.
func (s *Sequence) NextVal(db suitdrop.KVStore) ([]byte, error) {
	n, err := s.next(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// Latest returns the last value handed out, or zero for an unused counter.
func (s *Sequence) Latest(db suitdrop.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(err, "load sequence")
	}
	return DecodeSequence(raw)
}

func (s *Sequence) next(db suitdrop.KVStore) (int64, error) {
	n, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	if n == 1<<63-1 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(err, "store sequence")
	}
	return n, nil
}

// EncodeSequence returns the big endian form of n.
func EncodeSequence(n int64) []byte {
	raw := make([]byte, sequenceSize)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}

// DecodeSequence reverses EncodeSequence. An empty value is zero.
func DecodeSequence(raw []byte) (int64, error) {
	switch len(raw) {
	case 0:
		return 0, nil
	case sequenceSize:
		return int64(binary.BigEndian.Uint64(raw)), nil
	default:
		return 0, errors.Wrapf(errors.ErrState, "sequence value of %d bytes", len(raw))
	}
}
