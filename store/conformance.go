package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
)

// StoreConstructor returns a new, empty store and a function that releases
// all its resources.
type StoreConstructor func() (CacheableKVStore, func())

// RunStoreTests runs the tests that every CacheableKVStore implementation
// must pass. The runtime relies on this behaviour to isolate messages and
// contract instances.
func RunStoreTests(t *testing.T, newStore StoreConstructor) {
	t.Run("layered caches", func(t *testing.T) {
		base, cleanup := newStore()
		defer cleanup()
		testLayeredCaches(t, base)
	})
	t.Run("cache conflicts", func(t *testing.T) {
		testCacheConflicts(t, newStore)
	})
	t.Run("iterators", func(t *testing.T) {
		testIterators(t, newStore)
	})
}

func testLayeredCaches(t *testing.T, base CacheableKVStore) {
	a, b, c := []byte("a"), []byte("b"), []byte("c")
	assert.Nil(t, base.Set(a, []byte("1")))

	msg := base.CacheWrap()
	assert.Nil(t, msg.Set(b, []byte("2")))
	AssertGetHas(t, msg, a, []byte("1"), true)
	AssertGetHas(t, base, b, nil, false)

	// A nested cache sees everything below, while its own changes stay
	// invisible until written.
	effect := msg.CacheWrap()
	AssertGetHas(t, effect, b, []byte("2"), true)
	assert.Nil(t, effect.Delete(a))
	assert.Nil(t, effect.Set(c, []byte("3")))
	AssertGetHas(t, msg, a, []byte("1"), true)
	AssertGetHas(t, msg, c, nil, false)

	assert.Nil(t, effect.Write())
	AssertGetHas(t, msg, a, nil, false)
	AssertGetHas(t, msg, c, []byte("3"), true)
	AssertGetHas(t, base, a, []byte("1"), true)

	msg.Discard()
	AssertGetHas(t, base, a, []byte("1"), true)
	AssertGetHas(t, base, b, nil, false)
	AssertGetHas(t, base, c, nil, false)

	msg = base.CacheWrap()
	assert.Nil(t, msg.Set(b, []byte("4")))
	assert.Nil(t, msg.Write())
	AssertGetHas(t, base, b, []byte("4"), true)
}

func testCacheConflicts(t *testing.T, newStore StoreConstructor) {
	cases := map[string]struct {
		parent []Op
		child  []Op
		// want is the state of the parent after the child was written.
		want map[string]string
	}{
		"overwrite": {
			parent: []Op{SetOp([]byte("k"), []byte("old"))},
			child:  []Op{SetOp([]byte("k"), []byte("new"))},
			want:   map[string]string{"k": "new"},
		},
		"delete from parent": {
			parent: []Op{SetOp([]byte("k"), []byte("v")), SetOp([]byte("l"), []byte("w"))},
			child:  []Op{DelOp([]byte("k"))},
			want:   map[string]string{"k": "", "l": "w"},
		},
		"set after delete": {
			parent: []Op{SetOp([]byte("k"), []byte("v"))},
			child:  []Op{DelOp([]byte("k")), SetOp([]byte("k"), []byte("again"))},
			want:   map[string]string{"k": "again"},
		},
		"delete missing": {
			child: []Op{DelOp([]byte("k"))},
			want:  map[string]string{"k": ""},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := newStore()
			defer cleanup()

			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(parent))
			}
			before := make(map[string][]byte)
			for k := range tc.want {
				v, err := parent.Get([]byte(k))
				assert.Nil(t, err)
				before[k] = v
			}

			child := parent.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}
			for k, v := range tc.want {
				AssertGetHas(t, child, []byte(k), valueOf(v), v != "")
				AssertGetHas(t, parent, []byte(k), before[k], before[k] != nil)
			}

			assert.Nil(t, child.Write())
			for k, v := range tc.want {
				AssertGetHas(t, parent, []byte(k), valueOf(v), v != "")
			}
		})
	}
}

func valueOf(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}

func testIterators(t *testing.T, newStore StoreConstructor) {
	key := func(i int) []byte { return []byte(fmt.Sprintf("key-%02d", i)) }

	var parentOps, childOps []Op
	for i := 0; i < 20; i += 2 {
		parentOps = append(parentOps, SetOp(key(i), []byte(fmt.Sprintf("parent-%d", i))))
	}
	for i := 1; i < 20; i += 3 {
		childOps = append(childOps, SetOp(key(i), []byte(fmt.Sprintf("child-%d", i))))
	}
	for i := 0; i < 20; i += 6 {
		childOps = append(childOps, DelOp(key(i)))
	}
	want := applyOps(nil, parentOps)
	want = applyOps(want, childOps)

	cases := map[string]struct {
		start, end []byte
		want       []Model
	}{
		"everything": {
			want: want,
		},
		"lower bound": {
			start: key(5),
			want:  within(want, key(5), nil),
		},
		"upper bound": {
			end:  key(11),
			want: within(want, nil, key(11)),
		},
		"both bounds": {
			start: key(3),
			end:   key(16),
			want:  within(want, key(3), key(16)),
		},
		"empty range": {
			start: key(30),
			end:   key(40),
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := newStore()
			defer cleanup()
			for _, op := range parentOps {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range childOps {
				assert.Nil(t, op.Apply(child))
			}

			it, err := child.Iterator(tc.start, tc.end)
			assert.Nil(t, err)
			assertIterates(t, it, tc.want)

			it, err = child.ReverseIterator(tc.start, tc.end)
			assert.Nil(t, err)
			assertIterates(t, it, reverse(tc.want))
		})
	}
}

// applyOps returns the sorted result of applying operations to a state.
func applyOps(state []Model, ops []Op) []Model {
	m := make(map[string][]byte, len(state))
	for _, s := range state {
		m[string(s.Key)] = s.Value
	}
	for _, op := range ops {
		if op.delete {
			delete(m, string(op.key))
		} else {
			m[string(op.key)] = op.value
		}
	}
	res := make([]Model, 0, len(m))
	for k, v := range m {
		res = append(res, Pair([]byte(k), v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// within returns models with start <= key < end. Nil bound is unlimited.
func within(models []Model, start, end []byte) []Model {
	var res []Model
	for _, m := range models {
		if start != nil && bytes.Compare(m.Key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(m.Key, end) >= 0 {
			continue
		}
		res = append(res, m)
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func assertIterates(t testing.TB, it Iterator, want []Model) {
	t.Helper()
	defer it.Release()
	for i, w := range want {
		k, v, err := it.Next()
		assert.Nil(t, err)
		if !bytes.Equal(w.Key, k) {
			t.Fatalf("element %d: want key %q, got %q", i, w.Key, k)
		}
		assert.Equal(t, w.Value, v)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done, got %+v", err)
	}
}

// AssertGetHas checks that both Get and Has return the expected result.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}
