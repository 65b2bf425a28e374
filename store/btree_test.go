package store

import (
	"fmt"
	"testing"

	"github.com/iov-one/suitdrop/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeStore(t *testing.T) {
	RunStoreTests(t, memStoreConstructor)
}

// TestSliceIterator makes sure the basic slice iterator works
func TestSliceIterator(t *testing.T) {
	const Size = 10

	models := make([]Model, Size)
	for i := range models {
		models[i] = Pair([]byte(fmt.Sprintf("k%d", i)), []byte(fmt.Sprintf("v%d", i)))
	}

	iter := NewSliceIterator(models)
	for i := 0; i < Size; i++ {
		key, value, err := iter.Next()
		require.NoError(t, err)
		assert.Equal(t, models[i].Key, key)
		assert.Equal(t, models[i].Value, value)
	}
	_, _, err := iter.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))

	// iterator is empty after release
	trash := NewSliceIterator(models)
	trash.Release()
	_, _, err = trash.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))
}

func TestBTreeCacheDiscardedWritesAreDropped(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	nested := cache.CacheWrap()
	require.NoError(t, nested.Delete([]byte("a")))
	require.NoError(t, nested.Write())

	has, err := cache.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has, "nested write must reach the middle layer")

	cache.Discard()
	v, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	has, err = base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBTreeCacheNilKey(t *testing.T) {
	base := MemStore()
	assert.True(t, errors.ErrDatabase.Is(base.Set(nil, []byte("x"))))
	assert.True(t, errors.ErrDatabase.Is(base.Delete(nil)))
}
