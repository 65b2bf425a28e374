package store

import "github.com/iov-one/suitdrop"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = suitdrop.ReadOnlyKVStore
type SetDeleter = suitdrop.SetDeleter
type KVStore = suitdrop.KVStore
type Iterator = suitdrop.Iterator
type CacheableKVStore = suitdrop.CacheableKVStore
type KVCacheWrap = suitdrop.KVCacheWrap
type CommitKVStore = suitdrop.CommitKVStore
type CommitID = suitdrop.CommitID

// Batch is used to cache writes before committing to a lower store.
type Batch interface {
	SetDeleter
	Write() error
}

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
