// Package chain implements the chain engine: an append-only sequence of
// light block headers with one uncommitted pending successor, coupled to
// the versioned store it commits atomically on every grow.
package chain

import (
	"sync"
	"time"

	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/certen/tendermock/internal/chain/blockgen"
	"github.com/certen/tendermock/internal/store"
)

// Height is a (revision, block) pair. Within one running instance the
// revision is constant; only the block component advances.
type Height struct {
	Revision uint64
	Block    uint64
}

// Chain is the logical clock of the system.
type Chain struct {
	mu sync.RWMutex

	gen       *blockgen.Generator
	validated []*cmttypes.LightBlock // index 0 = height 1 (genesis)
	pending   *cmttypes.LightBlock

	store *store.Store
}

// New returns a chain with a genesis block at height 1 and a pending
// successor at height 2, both time-stamped to a deterministic
// midnight-UTC boundary, and a fresh versioned store.
func New(chainID string) *Chain {
	gen := blockgen.New(chainID)
	now := blockgen.TruncateToDay(time.Now())
	genesis := gen.Genesis(now)
	pending := gen.Next(genesis, now)
	return &Chain{
		gen:       gen,
		validated: []*cmttypes.LightBlock{genesis},
		pending:   pending,
		store:     store.New(),
	}
}

// Store returns the chain's versioned store.
func (c *Chain) Store() *store.Store { return c.store }

// GetHeight returns the chain height. The pending block does not count.
func (c *Chain) GetHeight() Height {
	c.mu.RLock()
	defer c.mu.RUnlock()
	last := c.validated[len(c.validated)-1]
	return Height{Revision: 1, Block: uint64(last.Header.Height)}
}

// GetBlock resolves h against the chain's dispatch rule: 0 means the last
// validated block, 1..N indexes validated, N+1 yields the pending block,
// anything else misses.
func (c *Chain) GetBlock(h uint64) (*cmttypes.LightBlock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := uint64(len(c.validated))
	switch {
	case h == 0:
		return c.validated[n-1], true
	case h >= 1 && h <= n:
		return c.validated[h-1], true
	case h == n+1:
		return c.pending, true
	default:
		return nil, false
	}
}

// Grow advances the chain by one block and commits the corresponding
// store snapshot atomically: the current pending block becomes the new
// tail of validated, a fresh pending block is derived from it, and the
// store's pending snapshot is committed in the same critical section.
func (c *Chain) Grow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.gen.Next(c.pending, time.Now())
	c.validated = append(c.validated, c.pending)
	c.pending = next
	c.store.Grow()
}
