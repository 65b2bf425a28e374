package app

import (
	"testing"

	"github.com/iov-one/suitdrop/droptest"
	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
)

func TestCommitStore(t *testing.T) {
	db, cleanup := droptest.CommitKVStore(t)
	defer cleanup()

	cs, err := NewCommitStore(db)
	assert.Nil(t, err)

	assert.Nil(t, cs.DeliverStore().Set([]byte("deliver"), []byte("1")))
	assert.Nil(t, cs.CheckStore().Set([]byte("check"), []byte("1")))

	// Nothing is visible before the commit.
	v, err := db.Get([]byte("deliver"))
	assert.Nil(t, err)
	if v != nil {
		t.Fatalf("unexpected value before commit: %q", v)
	}

	id, err := cs.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	info, err := cs.CommitInfo()
	assert.Nil(t, err)
	assert.Equal(t, id, info)

	// Only the deliver state is persisted.
	v, err = db.Get([]byte("deliver"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), v)
	v, err = db.Get([]byte("check"))
	assert.Nil(t, err)
	if v != nil {
		t.Fatalf("check state persisted: %q", v)
	}

	// New caches see the committed state.
	has, err := cs.CheckStore().Has([]byte("deliver"))
	assert.Nil(t, err)
	if !has {
		t.Fatal("committed value not visible in check store")
	}
}

func TestChainID(t *testing.T) {
	db, cleanup := droptest.CommitKVStore(t)
	defer cleanup()
	cs, err := NewCommitStore(db)
	assert.Nil(t, err)
	kv := cs.DeliverStore()

	id, err := LoadChainID(kv)
	assert.Nil(t, err)
	assert.Equal(t, "", id)

	assert.IsErr(t, errors.ErrInput, SaveChainID(kv, "x"))
	assert.Nil(t, SaveChainID(kv, "test-chain"))
	assert.IsErr(t, errors.ErrUnauthorized, SaveChainID(kv, "other-chain"))

	id, err = LoadChainID(kv)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", id)
}
