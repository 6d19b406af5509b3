// Package avltree implements the authenticated key-value tree that backs
// every store snapshot: an AVL-balanced binary search tree ordered by key,
// where every node also carries a Merkle-style hash summarising its
// subtree. Insert and Get are the only mutators/accessors; Proof extracts
// an ics23-shaped inclusion proof against the tree's current root hash.
package avltree

import (
	"bytes"
	"crypto/sha256"
	"errors"

	ics23 "github.com/cosmos/ics23/go"
)

// leafPrefix tags leaf hashes so they can never collide with an inner hash
// over the same bytes.
const leafPrefix = byte(0x00)

// ErrNotFound is returned by Proof when the key is absent from the tree.
var ErrNotFound = errors.New("avltree: key not found")

// node is an AuthNode: an entry in the tree, owning its children.
type node struct {
	key, value  []byte
	leafHash    [32]byte
	subtreeHash [32]byte
	height      int32
	left, right *node
}

// Tree is an AuthTree: an ordered key-value map whose root carries a
// cryptographic digest of its full contents. The zero value is an empty
// tree.
type Tree struct {
	root *node
}

// New returns an empty authenticated tree.
func New() *Tree { return &Tree{} }

func computeLeafHash(key, value []byte) [32]byte {
	buf := make([]byte, 0, 1+len(key)+len(value))
	buf = append(buf, leafPrefix)
	buf = append(buf, key...)
	buf = append(buf, value...)
	return sha256.Sum256(buf)
}

func childHash(n *node) []byte {
	if n == nil {
		return nil
	}
	h := n.subtreeHash
	return h[:]
}

func heightOf(n *node) int32 {
	if n == nil {
		return -1
	}
	return n.height
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// recompute refreshes height and subtreeHash from the node's current
// children and leaf hash. Must be called bottom-up after any structural
// change on the path from root to the modified node.
func (n *node) recompute() {
	n.height = 1 + max32(heightOf(n.left), heightOf(n.right))
	buf := make([]byte, 0, 96)
	buf = append(buf, childHash(n.left)...)
	buf = append(buf, n.leafHash[:]...)
	buf = append(buf, childHash(n.right)...)
	n.subtreeHash = sha256.Sum256(buf)
}

func balanceFactor(n *node) int32 {
	return heightOf(n.left) - heightOf(n.right)
}

// rotateRight performs a standard AVL right rotation, recomputing both
// affected nodes bottom-up.
func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	n.recompute()
	l.right = n
	l.recompute()
	return l
}

// rotateLeft performs a standard AVL left rotation, recomputing both
// affected nodes bottom-up.
func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	n.recompute()
	r.left = n
	r.recompute()
	return r
}

func balance(n *node) *node {
	bf := balanceFactor(n)
	if bf >= 2 {
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	}
	if bf <= -2 {
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func insert(n *node, key, value []byte) *node {
	if n == nil {
		return &node{key: key, value: value, leafHash: computeLeafHash(key, value)}
	}
	switch bytes.Compare(key, n.key) {
	case 0:
		n.key = key
		n.value = value
		n.leafHash = computeLeafHash(key, value)
	case -1:
		n.left = insert(n.left, key, value)
	default:
		n.right = insert(n.right, key, value)
	}
	n.recompute()
	return balance(n)
}

// Insert adds or replaces the value stored at key, rebalancing the tree and
// refreshing every hash on the path from the root.
func (t *Tree) Insert(key, value []byte) {
	k := append([]byte{}, key...)
	v := append([]byte{}, value...)
	t.root = insert(t.root, k, v)
}

func get(n *node, key []byte) ([]byte, bool) {
	for n != nil {
		switch bytes.Compare(key, n.key) {
		case 0:
			return n.value, true
		case -1:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil, false
}

// Get looks up key, returning its value and true, or (nil, false) if absent.
func (t *Tree) Get(key []byte) ([]byte, bool) {
	return get(t.root, key)
}

// RootHash returns the subtree hash of the root, or false for an empty tree.
func (t *Tree) RootHash() ([32]byte, bool) {
	if t.root == nil {
		return [32]byte{}, false
	}
	return t.root.subtreeHash, true
}

// Height reports the AVL subtree height of the root, or -1 for an empty tree.
func (t *Tree) Height() int32 {
	return heightOf(t.root)
}

// Clone returns a deep structural copy of the tree. Committed snapshots are
// never mutated after they are cloned into place.
func (t *Tree) Clone() *Tree {
	return &Tree{root: cloneNode(t.root)}
}

func cloneNode(n *node) *node {
	if n == nil {
		return nil
	}
	return &node{
		key:         append([]byte{}, n.key...),
		value:       append([]byte{}, n.value...),
		leafHash:    n.leafHash,
		subtreeHash: n.subtreeHash,
		height:      n.height,
		left:        cloneNode(n.left),
		right:       cloneNode(n.right),
	}
}

// proofSpecLeaf describes how leaf hashes are computed: SHA-256 over
// LEAF_PREFIX || key || value, with no key/value prehashing or length
// prefixing.
func proofSpecLeaf() *ics23.LeafOp {
	return &ics23.LeafOp{
		Hash:         ics23.HashOp_SHA256,
		PrehashKey:   ics23.HashOp_NO_HASH,
		PrehashValue: ics23.HashOp_NO_HASH,
		Length:       ics23.LengthOp_NO_PREFIX,
		Prefix:       []byte{leafPrefix},
	}
}

// ProofSpec is the descriptor exported to verifiers: child ordering
// [left, leaf, right], SHA-256, the empty-child placeholder [0x00, 0x14]
// (advertised but never emitted during hash folding, see DESIGN.md), and no
// length or prefix padding.
func ProofSpec() *ics23.ProofSpec {
	return &ics23.ProofSpec{
		LeafSpec: proofSpecLeaf(),
		InnerSpec: &ics23.InnerSpec{
			ChildOrder:      []int32{0, 2, 1},
			ChildSize:       0,
			MinPrefixLength: 0,
			MaxPrefixLength: 0,
			EmptyChild:      []byte{0x00, 0x14},
			Hash:            ics23.HashOp_SHA256,
		},
		MaxDepth: 0,
		MinDepth: 0,
	}
}

func proofRec(n *node, key []byte) (*node, []*ics23.InnerOp, error) {
	if n == nil {
		return nil, nil, ErrNotFound
	}
	switch bytes.Compare(key, n.key) {
	case 0:
		op := &ics23.InnerOp{
			Hash:   ics23.HashOp_SHA256,
			Prefix: append([]byte{}, childHash(n.left)...),
			Suffix: append([]byte{}, childHash(n.right)...),
		}
		return n, []*ics23.InnerOp{op}, nil
	case -1:
		leaf, path, err := proofRec(n.left, key)
		if err != nil {
			return nil, nil, err
		}
		suffix := append([]byte{}, n.leafHash[:]...)
		suffix = append(suffix, childHash(n.right)...)
		op := &ics23.InnerOp{Hash: ics23.HashOp_SHA256, Prefix: nil, Suffix: suffix}
		return leaf, append(path, op), nil
	default:
		leaf, path, err := proofRec(n.right, key)
		if err != nil {
			return nil, nil, err
		}
		prefix := append([]byte{}, childHash(n.left)...)
		prefix = append(prefix, n.leafHash[:]...)
		op := &ics23.InnerOp{Hash: ics23.HashOp_SHA256, Prefix: prefix, Suffix: nil}
		return leaf, append(path, op), nil
	}
}

// Proof returns an inclusion proof for key against the tree's current root
// hash, or ErrNotFound if the key is absent.
func (t *Tree) Proof(key []byte) (*ics23.ExistenceProof, error) {
	leaf, path, err := proofRec(t.root, key)
	if err != nil {
		return nil, err
	}
	return &ics23.ExistenceProof{
		Key:   append([]byte{}, leaf.key...),
		Value: append([]byte{}, leaf.value...),
		Leaf:  proofSpecLeaf(),
		Path:  path,
	}, nil
}

// Verify recomputes the root hash implied by proof and checks it against
// root, and that the proof is in fact a proof of (key, value).
func Verify(proof *ics23.ExistenceProof, root [32]byte, key, value []byte) bool {
	if proof == nil {
		return false
	}
	if !bytes.Equal(proof.Key, key) || !bytes.Equal(proof.Value, value) {
		return false
	}
	computed, err := ics23.CalculateExistenceRoot(proof)
	if err != nil {
		return false
	}
	return bytes.Equal(computed, root[:])
}

// Integrity walks the tree checking the ordering invariant (strictly
// ascending in-order keys) and the AVL balance invariant
// (|left.height - right.height| <= 1 for every node). It returns the first
// violation found, or nil.
func (t *Tree) Integrity() error {
	var prev []byte
	var seenPrev bool
	var walk func(n *node) error
	walk = func(n *node) error {
		if n == nil {
			return nil
		}
		if bf := balanceFactor(n); bf > 1 || bf < -1 {
			return errors.New("avltree: balance invariant violated")
		}
		if wantHeight := 1 + max32(heightOf(n.left), heightOf(n.right)); wantHeight != n.height {
			return errors.New("avltree: height bookkeeping inconsistent")
		}
		if err := walk(n.left); err != nil {
			return err
		}
		if seenPrev && bytes.Compare(prev, n.key) >= 0 {
			return errors.New("avltree: ordering invariant violated")
		}
		prev, seenPrev = n.key, true
		return walk(n.right)
	}
	return walk(t.root)
}
