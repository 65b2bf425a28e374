package store

import (
	"bytes"

	"github.com/iov-one/suitdrop/errors"
)

// mergeIterator combines the cached items of a cache wrap with the iterator
// of the backing store. Cached values take precedence and deleted items hide
// the backing store value.
type mergeIterator struct {
	cache     []entry
	cacheIdx  int
	parent    Iterator
	ascending bool

	// next value of the parent, loaded lazily
	parentKey   []byte
	parentValue []byte
	parentReady bool
	parentDone  bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []entry, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		cache:     cache,
		parent:    parent,
		ascending: ascending,
	}
}

func (m *mergeIterator) loadParent() error {
	if m.parentReady || m.parentDone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.parentDone = true
		return nil
	case err != nil:
		return err
	}
	m.parentKey, m.parentValue, m.parentReady = key, value, true
	return nil
}

// cacheFirst returns true if the cached item must be returned before the
// parent item, and if both refer to the same key.
func (m *mergeIterator) cacheFirst(cached []byte) (first bool, same bool) {
	cmp := bytes.Compare(cached, m.parentKey)
	if cmp == 0 {
		return true, true
	}
	if m.ascending {
		return cmp < 0, false
	}
	return cmp > 0, false
}

// Next returns the next key value pair or errors.ErrIteratorDone.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}

		hasCache := m.cacheIdx < len(m.cache)
		if !hasCache {
			if m.parentDone {
				return nil, nil, errors.ErrIteratorDone
			}
			m.parentReady = false
			return m.parentKey, m.parentValue, nil
		}

		item := m.cache[m.cacheIdx]
		if !m.parentDone {
			first, same := m.cacheFirst(item.key)
			if !first {
				m.parentReady = false
				return m.parentKey, m.parentValue, nil
			}
			if same {
				// Cached value overwrites the parent.
				m.parentReady = false
			}
		}

		m.cacheIdx++
		if item.deleted {
			continue
		}
		return item.key, item.value, nil
	}
}

// Release releases the Iterator.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.cache = nil
}
