package store

import (
	"github.com/iov-one/suitdrop/errors"
)

// PrefixStore is a view on a KVStore that transparently prefixes every key.
// Keys returned by iterators have the prefix removed, so that any number of
// contract instances can share one backing store without seeing each other
// data.
type PrefixStore struct {
	prefix []byte
	kv     KVStore
}

var _ KVStore = (*PrefixStore)(nil)

// NewPrefixStore returns a view of given store limited to the keys starting
// with prefix.
func NewPrefixStore(kv KVStore, prefix []byte) *PrefixStore {
	return &PrefixStore{
		prefix: append([]byte(nil), prefix...),
		kv:     kv,
	}
}

func (p *PrefixStore) key(key []byte) []byte {
	k := make([]byte, 0, len(p.prefix)+len(key))
	k = append(k, p.prefix...)
	return append(k, key...)
}

// Get returns nil iff key doesn't exist.
func (p *PrefixStore) Get(key []byte) ([]byte, error) {
	return p.kv.Get(p.key(key))
}

// Has checks if a key exists.
func (p *PrefixStore) Has(key []byte) (bool, error) {
	return p.kv.Has(p.key(key))
}

// Set sets the key.
func (p *PrefixStore) Set(key, value []byte) error {
	return p.kv.Set(p.key(key), value)
}

// Delete deletes the key.
func (p *PrefixStore) Delete(key []byte) error {
	return p.kv.Delete(p.key(key))
}

func (p *PrefixStore) bounds(start, end []byte) ([]byte, []byte) {
	s := p.key(start)
	var e []byte
	if end == nil {
		e = PrefixEnd(p.prefix)
	} else {
		e = p.key(end)
	}
	return s, e
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (p *PrefixStore) Iterator(start, end []byte) (Iterator, error) {
	s, e := p.bounds(start, end)
	it, err := p.kv.Iterator(s, e)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: p.prefix, it: it}, nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (p *PrefixStore) ReverseIterator(start, end []byte) (Iterator, error) {
	s, e := p.bounds(start, end)
	it, err := p.kv.ReverseIterator(s, e)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: p.prefix, it: it}, nil
}

type prefixIterator struct {
	prefix []byte
	it     Iterator
}

func (i *prefixIterator) Next() ([]byte, []byte, error) {
	key, value, err := i.it.Next()
	if err != nil {
		return nil, nil, err
	}
	if len(key) < len(i.prefix) {
		return nil, nil, errors.Wrapf(errors.ErrDatabase, "key %X outside of prefix", key)
	}
	return key[len(i.prefix):], value, nil
}

func (i *prefixIterator) Release() {
	i.it.Release()
}

// PrefixEnd returns the smallest key that is greater than every key starting
// with given prefix. Nil is returned when no such key exists (the prefix is
// made of 0xFF bytes only), which stands for an open range end.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
