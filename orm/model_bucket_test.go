package orm

import (
	"testing"

	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()

	b := NewModelBucket("cnts", &counter{})

	if err := b.Put(db, []byte("c1"), &counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	assert.Nil(t, b.Has(db, []byte("c1")))

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("c1")))
}

func TestModelBucketZeroValue(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	// Zero value model serializes to no bytes at all.
	assert.Nil(t, b.Put(db, []byte("zero"), &counter{}))
	var c counter
	assert.Nil(t, b.One(db, []byte("zero"), &c))
	assert.Equal(t, int64(0), c.Count)
}

func TestModelBucketErrors(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	cases := map[string]struct {
		fn      func() error
		wantErr *errors.Error
	}{
		"invalid model": {
			fn:      func() error { return b.Put(db, []byte("a"), &counter{Count: -1}) },
			wantErr: errors.ErrModel,
		},
		"empty key put": {
			fn:      func() error { return b.Put(db, nil, &counter{Count: 1}) },
			wantErr: errors.ErrInput,
		},
		"empty key get": {
			fn:      func() error { return b.One(db, nil, &counter{}) },
			wantErr: errors.ErrInput,
		},
		"wrong type put": {
			fn:      func() error { return b.Put(db, []byte("a"), &otherModel{}) },
			wantErr: errors.ErrType,
		},
		"wrong type get": {
			fn:      func() error { return b.One(db, []byte("a"), &otherModel{}) },
			wantErr: errors.ErrType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.fn())
		})
	}
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	other := NewModelBucket("cntz", &counter{})

	for i, key := range []string{"c", "a", "d", "b"} {
		assert.Nil(t, b.Put(db, []byte(key), &counter{Count: int64(i)}))
		// Values of another bucket must never be returned.
		assert.Nil(t, other.Put(db, []byte(key), &counter{Count: 100}))
	}

	cases := map[string]struct {
		start    []byte
		wantKeys []string
	}{
		"all": {
			start:    nil,
			wantKeys: []string{"a", "b", "c", "d"},
		},
		"start inclusive": {
			start:    []byte("b"),
			wantKeys: []string{"b", "c", "d"},
		},
		"start after last": {
			start:    []byte("e"),
			wantKeys: nil,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := b.Iterate(db, tc.start)
			assert.Nil(t, err)
			defer it.Release()

			var keys []string
			for {
				var c counter
				key, err := it.LoadNext(&c)
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				assert.Nil(t, err)
				if c.Count == 100 {
					t.Fatalf("value of another bucket returned for %q", key)
				}
				keys = append(keys, string(key))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestNewModelBucketPanics(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X!", &counter{}) })
	assert.Panics(t, func() { NewModelBucket("cnts", nil) })
}
