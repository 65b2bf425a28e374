/*
Package merkle implements a binary hash tree with sorted pair hashing.

At every level the two sibling hashes are sorted in ascending byte order
before being concatenated and hashed. A proof is therefore only the list of
sibling hashes from the leaf up to the root, without the left or right
position of each node.
*/
package merkle

import (
	"bytes"
	"crypto/sha256"
	"sort"

	"github.com/iov-one/suitdrop/errors"
)

// HashSize is the length of every node of the tree.
const HashSize = sha256.Size

// LeafHash returns the hash of a leaf data.
func LeafHash(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// HashPair combines two nodes into their parent. The result does not depend
// on the order of the arguments.
func HashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	h := sha256.New()
	h.Write(a)
	h.Write(b)
	return h.Sum(nil)
}

// ComputeRoot folds the proof into the leaf hash, returning the root the
// proof commits to.
func ComputeRoot(leaf []byte, proof [][]byte) []byte {
	cur := leaf
	for _, sibling := range proof {
		cur = HashPair(cur, sibling)
	}
	return cur
}

// Verify returns true if the leaf hash together with the proof reproduces
// given root.
func Verify(leaf []byte, proof [][]byte, root []byte) bool {
	return bytes.Equal(ComputeRoot(leaf, proof), root)
}

// Tree is a complete hash tree built from a set of leaves.
type Tree struct {
	// levels[0] holds the leaf hashes, the last level holds the root.
	levels [][][]byte
}

// NewTree builds a tree of given leaf data. Leaf hashes are sorted and
// deduplicated so that the root does not depend on the order of the input.
// A node without a sibling is promoted to the next level unchanged.
func NewTree(leaves [][]byte) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no leaves")
	}
	hashes := make([][]byte, 0, len(leaves))
	for _, l := range leaves {
		hashes = append(hashes, LeafHash(l))
	}
	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i], hashes[j]) < 0
	})
	uniq := hashes[:1]
	for _, h := range hashes[1:] {
		if !bytes.Equal(h, uniq[len(uniq)-1]) {
			uniq = append(uniq, h)
		}
	}

	t := &Tree{levels: [][][]byte{uniq}}
	for level := uniq; len(level) > 1; {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, HashPair(level[i], level[i+1]))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

// Root returns the root hash of the tree.
func (t *Tree) Root() []byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Size returns the number of distinct leaves.
func (t *Tree) Size() int {
	return len(t.levels[0])
}

// Proof returns the sibling path of given leaf data, in leaf to root order.
// ErrNotFound is returned if the leaf is not part of the tree.
func (t *Tree) Proof(data []byte) ([][]byte, error) {
	leaf := LeafHash(data)
	leaves := t.levels[0]
	idx := sort.Search(len(leaves), func(i int) bool {
		return bytes.Compare(leaves[i], leaf) >= 0
	})
	if idx == len(leaves) || !bytes.Equal(leaves[idx], leaf) {
		return nil, errors.Wrap(errors.ErrNotFound, "leaf")
	}

	var proof [][]byte
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := idx ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		idx /= 2
	}
	return proof, nil
}
