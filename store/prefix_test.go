package store

import (
	"testing"

	"github.com/iov-one/suitdrop/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixStoreIsolation(t *testing.T) {
	db := MemStore()
	alice := NewPrefixStore(db, []byte("alice:"))
	bob := NewPrefixStore(db, []byte("bob:"))

	require.NoError(t, alice.Set([]byte("k1"), []byte("a1")))
	require.NoError(t, alice.Set([]byte("k2"), []byte("a2")))
	require.NoError(t, bob.Set([]byte("k1"), []byte("b1")))

	v, err := alice.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a1"), v)

	v, err = bob.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b1"), v)

	has, err := bob.Has([]byte("k2"))
	require.NoError(t, err)
	assert.False(t, has)

	raw, err := db.Get([]byte("alice:k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a2"), raw)

	require.NoError(t, alice.Delete([]byte("k1")))
	has, err = alice.Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, has)
	has, err = bob.Has([]byte("k1"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPrefixStoreIterator(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("outside")))
	require.NoError(t, db.Set([]byte("pref;z"), []byte("outside")))

	p := NewPrefixStore(db, []byte("pref:"))
	for _, k := range []string{"1", "2", "3", "4"} {
		require.NoError(t, p.Set([]byte(k), []byte("v"+k)))
	}

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"all ascending": {
			want: []string{"1", "2", "3", "4"},
		},
		"all descending": {
			reverse: true,
			want:    []string{"4", "3", "2", "1"},
		},
		"lower bound": {
			start: []byte("3"),
			want:  []string{"3", "4"},
		},
		"both bounds": {
			start: []byte("2"),
			end:   []byte("4"),
			want:  []string{"2", "3"},
		},
		"both bounds descending": {
			start:   []byte("2"),
			end:     []byte("4"),
			reverse: true,
			want:    []string{"3", "2"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = p.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = p.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Release()

			var got []string
			for {
				key, value, err := it.Next()
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				require.NoError(t, err)
				assert.Equal(t, "v"+string(key), string(value))
				got = append(got, string(key))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":        {prefix: []byte("abc"), want: []byte("abd")},
		"carry":         {prefix: []byte{0x01, 0xFF}, want: []byte{0x02}},
		"all max bytes": {prefix: []byte{0xFF, 0xFF}, want: nil},
		"empty is open": {prefix: nil, want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, PrefixEnd(tc.prefix))
		})
	}
}
