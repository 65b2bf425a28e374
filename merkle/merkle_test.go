package merkle

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/iov-one/suitdrop/droptest/assert"
	"github.com/iov-one/suitdrop/errors"
)

func TestHashPairIsSymmetric(t *testing.T) {
	cases := map[string]struct {
		a, b []byte
	}{
		"distinct": {
			a: LeafHash([]byte("a")),
			b: LeafHash([]byte("b")),
		},
		"equal": {
			a: LeafHash([]byte("a")),
			b: LeafHash([]byte("a")),
		},
		"common prefix": {
			a: append(bytes.Repeat([]byte{7}, 31), 1),
			b: append(bytes.Repeat([]byte{7}, 31), 2),
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, HashPair(tc.a, tc.b), HashPair(tc.b, tc.a))
		})
	}
}

func TestHashPairSortsBeforeHashing(t *testing.T) {
	low := bytes.Repeat([]byte{0x01}, HashSize)
	high := bytes.Repeat([]byte{0xfe}, HashSize)
	want := sha256.Sum256(append(append([]byte{}, low...), high...))
	assert.Equal(t, want[:], HashPair(high, low))
}

func TestVerifyEmptyProof(t *testing.T) {
	leaf := LeafHash([]byte("x"))
	if !Verify(leaf, nil, LeafHash([]byte("x"))) {
		t.Fatal("leaf must be its own root")
	}
	if Verify(leaf, nil, LeafHash([]byte("y"))) {
		t.Fatal("different root accepted")
	}
}

func TestTreeProofs(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 5, 7, 8, 13, 64} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			var leaves [][]byte
			for i := 0; i < size; i++ {
				leaves = append(leaves, []byte(fmt.Sprintf("leaf-%d", i)))
			}
			tree, err := NewTree(leaves)
			assert.Nil(t, err)
			assert.Equal(t, size, tree.Size())

			for _, l := range leaves {
				proof, err := tree.Proof(l)
				assert.Nil(t, err)
				if !Verify(LeafHash(l), proof, tree.Root()) {
					t.Fatalf("cannot verify %q", l)
				}
			}

			_, err = tree.Proof([]byte("not a member"))
			assert.IsErr(t, errors.ErrNotFound, err)
		})
	}
}

func TestTreeIsOrderIndependent(t *testing.T) {
	a, err := NewTree([][]byte{[]byte("1"), []byte("2"), []byte("3")})
	assert.Nil(t, err)
	b, err := NewTree([][]byte{[]byte("3"), []byte("1"), []byte("2"), []byte("1")})
	assert.Nil(t, err)
	assert.Equal(t, a.Root(), b.Root())
	assert.Equal(t, 3, b.Size())
}

func TestSingleBitMutationFails(t *testing.T) {
	var leaves [][]byte
	for i := 0; i < 9; i++ {
		leaves = append(leaves, []byte(fmt.Sprintf("account-%d", i)))
	}
	tree, err := NewTree(leaves)
	assert.Nil(t, err)

	leaf := LeafHash(leaves[4])
	proof, err := tree.Proof(leaves[4])
	assert.Nil(t, err)
	root := tree.Root()

	flip := func(b []byte, bit int) []byte {
		c := append([]byte{}, b...)
		c[bit/8] ^= 1 << uint(bit%8)
		return c
	}

	for bit := 0; bit < HashSize*8; bit += 37 {
		if Verify(flip(leaf, bit), proof, root) {
			t.Fatalf("mutated leaf bit %d verified", bit)
		}
		if Verify(leaf, proof, flip(root, bit)) {
			t.Fatalf("mutated root bit %d verified", bit)
		}
		for i := range proof {
			mutated := append([][]byte{}, proof...)
			mutated[i] = flip(proof[i], bit)
			if Verify(leaf, mutated, root) {
				t.Fatalf("mutated proof element %d bit %d verified", i, bit)
			}
		}
	}
}

func TestNewTreeEmpty(t *testing.T) {
	_, err := NewTree(nil)
	assert.IsErr(t, errors.ErrEmpty, err)
}
