// Package store implements the versioned authenticated key-value store: a
// sequence of committed tree snapshots indexed by block height, plus a
// single mutable pending snapshot that accumulates writes between blocks.
package store

import (
	"sync"

	"github.com/certen/tendermock/internal/avltree"
)

// Store is a VersionedStore. The zero value is not usable; use New.
type Store struct {
	committedMu sync.RWMutex
	committed   []*avltree.Tree // index 0 = height 1 (genesis)

	pendingMu sync.RWMutex
	pending   *avltree.Tree
}

// New returns a store with an empty genesis snapshot at height 1 and a
// pending snapshot cloned from it.
func New() *Store {
	genesis := avltree.New()
	return &Store{
		committed: []*avltree.Tree{genesis},
		pending:   genesis.Clone(),
	}
}

// Height returns the number of committed snapshots (the latest committed
// block height).
func (s *Store) Height() uint64 {
	s.committedMu.RLock()
	defer s.committedMu.RUnlock()
	return uint64(len(s.committed))
}

// Set mutates only the pending snapshot; committed snapshots are never
// touched by Set.
func (s *Store) Set(key, value []byte) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending.Insert(key, value)
}

// snapshotAt resolves height against the dispatch rule shared by every
// height-addressed read in this system: 0 means latest committed, 1..N
// indexes committed, N+1 is the pending snapshot, anything else misses.
func (s *Store) snapshotAt(height uint64) (*avltree.Tree, bool) {
	s.committedMu.RLock()
	n := uint64(len(s.committed))
	var committedSnap *avltree.Tree
	switch {
	case height == 0:
		committedSnap = s.committed[n-1]
	case height >= 1 && height <= n:
		committedSnap = s.committed[height-1]
	}
	s.committedMu.RUnlock()

	if committedSnap != nil {
		return committedSnap, true
	}
	if height == n+1 {
		s.pendingMu.RLock()
		defer s.pendingMu.RUnlock()
		return s.pending, true
	}
	return nil, false
}

// Get resolves height and looks up key within that snapshot. It returns
// (nil, false) if height is out of range or the key is absent.
func (s *Store) Get(height uint64, key []byte) ([]byte, bool) {
	snap, ok := s.snapshotAt(height)
	if !ok {
		return nil, false
	}
	if snap == s.pending {
		s.pendingMu.RLock()
		defer s.pendingMu.RUnlock()
	} else {
		s.committedMu.RLock()
		defer s.committedMu.RUnlock()
	}
	return snap.Get(key)
}

// Snapshot returns the tree at height, for callers that need the tree
// itself rather than one value (abci_query's height range check,
// broadcast_tx_commit's scratch clone). It returns nil, false if height
// is out of range.
func (s *Store) Snapshot(height uint64) (*avltree.Tree, bool) {
	return s.snapshotAt(height)
}

// Commit replaces the pending snapshot wholesale. It exists for callers
// (broadcast_tx_commit) that build a scratch clone of pending, apply a
// batch of writes to the scratch copy off to the side, and only want
// the result visible if every write in the batch succeeded.
func (s *Store) Commit(tree *avltree.Tree) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending = tree
}

// Grow deep-clones the current pending snapshot and appends it to
// committed. Pending is left as-is, so the newly appended committed
// snapshot and pending are value-equal immediately after Grow; subsequent
// Sets diverge pending from committed's new tail.
func (s *Store) Grow() {
	s.pendingMu.RLock()
	clone := s.pending.Clone()
	s.pendingMu.RUnlock()

	s.committedMu.Lock()
	s.committed = append(s.committed, clone)
	s.committedMu.Unlock()
}
