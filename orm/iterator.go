package orm

import (
	"reflect"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
)

// ModelIterator goes through models stored in a bucket.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
type ModelIterator interface {
	// LoadNext moves the iterator to the next sequential key in the
	// database and loads the value into the passed destination. It returns
	// the primary key of the loaded model, or errors.ErrIteratorDone when
	// all models were consumed.
	LoadNext(dest Model) ([]byte, error)

	// Release releases the Iterator.
	Release()
}

type modelIterator struct {
	// this is the raw KVStoreIterator
	iterator suitdrop.Iterator
	// this is the bucket prefix to strip from each key
	prefix []byte
	model  reflect.Type
}

var _ ModelIterator = (*modelIterator)(nil)

func (i *modelIterator) LoadNext(dest Model) ([]byte, error) {
	if !reflect.TypeOf(dest).AssignableTo(i.model) {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", i.model, dest)
	}
	key, value, err := i.iterator.Next()
	if err != nil {
		return nil, err
	}
	if len(key) < len(i.prefix) {
		return nil, errors.Wrapf(errors.ErrDatabase, "key %X outside of the bucket", key)
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return key[len(i.prefix):], nil
}

func (i *modelIterator) Release() {
	i.iterator.Release()
}
