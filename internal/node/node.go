// Package node binds a Chain to static chain metadata and exposes it as
// a single shared unit of mutable state guarded by one reader-writer
// lock, per spec section 5's concurrency model.
package node

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cometbft/cometbft/p2p"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/certen/tendermock/internal/chain"
	"github.com/certen/tendermock/internal/node/txmsg"
	"github.com/certen/tendermock/internal/rpcerr"
)

// Node is the chain plus the metadata every RPC surface needs to
// describe it: chain id, the client id this node poses as the host of,
// its static consensus parameters, and a node descriptor reused
// verbatim in `status`.
type Node struct {
	ChainID         string
	HostClientID    string
	Info            p2p.DefaultNodeInfo
	ConsensusParams cmttypes.ConsensusParams

	chain *chain.Chain
}

// New constructs a Node with a fresh Chain seeded by chainID.
func New(chainID, hostClientID string, params cmttypes.ConsensusParams) *Node {
	return &Node{
		ChainID:      chainID,
		HostClientID: hostClientID,
		Info: p2p.DefaultNodeInfo{
			DefaultNodeID: "tendermock",
			Network:       chainID,
			Moniker:       "tendermock",
			Version:       "0.38.0",
		},
		ConsensusParams: params,
		chain:           chain.New(chainID),
	}
}

// GetHeight returns the chain height.
func (n *Node) GetHeight() chain.Height { return n.chain.GetHeight() }

// GetBlock resolves h against the chain's dispatch rule.
func (n *Node) GetBlock(h uint64) (*cmttypes.LightBlock, bool) { return n.chain.GetBlock(h) }

// GetChainID returns the node's chain id.
func (n *Node) GetChainID() string { return n.ChainID }

// GetConsensusParams returns the node's static consensus parameters.
func (n *Node) GetConsensusParams() cmttypes.ConsensusParams { return n.ConsensusParams }

// GetInfo returns the node's static descriptor, reused by `status`.
func (n *Node) GetInfo() p2p.DefaultNodeInfo { return n.Info }

// SyncInfo is the subset of `status.sync_info` this mocked node can
// answer meaningfully: it never actually falls behind, so catching_up
// is always false.
type SyncInfo struct {
	LatestBlockHash   []byte
	LatestBlockHeight int64
	LatestBlockTime   int64
	CatchingUp        bool
}

// GetSyncInfo derives a SyncInfo from the latest validated block.
func (n *Node) GetSyncInfo() SyncInfo {
	blk, _ := n.chain.GetBlock(0)
	return SyncInfo{
		LatestBlockHash:   blk.Header.Hash(),
		LatestBlockHeight: blk.Header.Height,
		LatestBlockTime:   blk.Header.Time.Unix(),
		CatchingUp:        false,
	}
}

// Grow advances the chain and store atomically.
func (n *Node) Grow() { n.chain.Grow() }

// ABCIInfo reports the latest committed store height as the app's last
// block height, matching abci_info's contract that the store and chain
// heights agree after every grow.
func (n *Node) ABCIInfo() (lastBlockHeight int64, lastBlockAppHash []byte) {
	blk, _ := n.chain.GetBlock(0)
	return blk.Header.Height, blk.Header.AppHash
}

// ABCIQuery looks up key in the store at height, using the store's
// dispatch rule. ok is false when height itself is out of range (a
// structural miss); a key miss within a valid height is reported via
// found, with the not-found ABCI code left for the caller to encode.
func (n *Node) ABCIQuery(height uint64, key []byte) (value []byte, found, ok bool) {
	if _, snapOK := n.chain.Store().Snapshot(height); !snapOK {
		return nil, false, false
	}
	v, hit := n.chain.Store().Get(height, key)
	return v, hit, true
}

// Keeper paths, literal per spec.
func clientTypePath(id string) []byte    { return []byte(fmt.Sprintf("clients/%s/clientType", id)) }
func clientStatePath(id string) []byte   { return []byte(fmt.Sprintf("clients/%s/clientState", id)) }
func consensusStatePath(id string, height uint64) []byte {
	return []byte(fmt.Sprintf("clients/%s/consensusState/%d", id, height))
}
func connectionEndPath(id string) []byte { return []byte(fmt.Sprintf("connections/%s", id)) }
func connectionToClientPath(id string) []byte {
	return []byte(fmt.Sprintf("clients/%s/connections", id))
}

// ClientType reads a client's type at the latest committed height.
func (n *Node) ClientType(clientID string) (string, bool) {
	v, ok := n.chain.Store().Get(0, clientTypePath(clientID))
	if !ok {
		return "", false
	}
	return string(v), true
}

// ClientState reads a client's state payload at the latest committed
// height.
func (n *Node) ClientState(clientID string) ([]byte, bool) {
	return n.chain.Store().Get(0, clientStatePath(clientID))
}

// ConsensusState reads a client's recorded consensus state at height.
func (n *Node) ConsensusState(clientID string, height uint64) ([]byte, bool) {
	return n.chain.Store().Get(0, consensusStatePath(clientID, height))
}

// ConnectionEnd reads a connection's end payload.
func (n *Node) ConnectionEnd(connectionID string) ([]byte, bool) {
	return n.chain.Store().Get(0, connectionEndPath(connectionID))
}

// ConnectionToClient reads the connection id recorded for a client.
func (n *Node) ConnectionToClient(clientID string) ([]byte, bool) {
	return n.chain.Store().Get(0, connectionToClientPath(clientID))
}

// apply applies one decoded message through set, which writes into the
// pending or a scratch snapshot (the caller decides which).
func apply(set func(key, value []byte), env txmsg.Envelope) error {
	switch env.Type {
	case txmsg.TypeCreateClient:
		var m txmsg.CreateClient
		if err := json.Unmarshal(env.Value, &m); err != nil {
			return rpcerr.New(rpcerr.DecodeFailure, "create_client: %v", err)
		}
		set(clientTypePath(m.ClientID), []byte(m.ClientType))
		set(clientStatePath(m.ClientID), m.ClientState)
		return nil
	case txmsg.TypeUpdateClient:
		var m txmsg.UpdateClient
		if err := json.Unmarshal(env.Value, &m); err != nil {
			return rpcerr.New(rpcerr.DecodeFailure, "update_client: %v", err)
		}
		set(consensusStatePath(m.ClientID, m.Height), m.ConsensusState)
		return nil
	case txmsg.TypeConnOpenInit:
		var m txmsg.ConnOpenInit
		if err := json.Unmarshal(env.Value, &m); err != nil {
			return rpcerr.New(rpcerr.DecodeFailure, "conn_open_init: %v", err)
		}
		set(connectionEndPath(m.ConnectionID), m.ConnectionEnd)
		return nil
	case txmsg.TypeConnOpenAck:
		var m txmsg.ConnOpenAck
		if err := json.Unmarshal(env.Value, &m); err != nil {
			return rpcerr.New(rpcerr.DecodeFailure, "conn_open_ack: %v", err)
		}
		set(connectionEndPath(m.ConnectionID), m.ConnectionEnd)
		set(connectionToClientPath(m.ClientID), []byte(m.ConnectionID))
		return nil
	default:
		return rpcerr.New(rpcerr.ApplyFailure, "unknown message type %q", env.Type)
	}
}

// BroadcastTxResult carries the fields broadcast_tx_commit reports back.
type BroadcastTxResult struct {
	Height uint64
	Hash   []byte
}

// BroadcastTxCommit decodes tx as a JSON array of txmsg.Envelope,
// advances the chain once, then applies every message against a
// scratch clone of the newly pending snapshot. Applying is atomic: if
// any message fails to decode or apply, pending is left untouched and
// the error is returned; otherwise the scratch clone becomes the new
// pending snapshot.
func (n *Node) BroadcastTxCommit(tx []byte) (*BroadcastTxResult, error) {
	var envelopes []txmsg.Envelope
	if err := json.Unmarshal(tx, &envelopes); err != nil {
		return nil, rpcerr.New(rpcerr.DecodeFailure, "transaction body: %v", err)
	}

	n.chain.Grow()

	st := n.chain.Store()
	pendingHeight := st.Height() + 1
	scratch, ok := st.Snapshot(pendingHeight)
	if !ok {
		return nil, rpcerr.ErrServerError
	}
	scratch = scratch.Clone()

	for _, env := range envelopes {
		if err := apply(scratch.Insert, env); err != nil {
			return nil, err
		}
	}
	st.Commit(scratch)

	h := n.chain.GetHeight()
	blk, _ := n.chain.GetBlock(0)
	return &BroadcastTxResult{Height: h.Block, Hash: blk.Header.Hash()}, nil
}

// Shared wraps a Node behind the single process-global reader-writer
// lock spec section 5 calls for. Every exported method takes the
// appropriate lock for exactly the duration of the underlying Node
// call; callers must never hold a Shared lock across network I/O.
type Shared struct {
	mu   sync.RWMutex
	node *Node
}

// NewShared wraps node.
func NewShared(n *Node) *Shared { return &Shared{node: n} }

func (s *Shared) GetHeight() chain.Height {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.GetHeight()
}

func (s *Shared) GetBlock(h uint64) (*cmttypes.LightBlock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.GetBlock(h)
}

func (s *Shared) GetChainID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.GetChainID()
}

func (s *Shared) GetConsensusParams() cmttypes.ConsensusParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.GetConsensusParams()
}

func (s *Shared) GetInfo() p2p.DefaultNodeInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.GetInfo()
}

func (s *Shared) GetSyncInfo() SyncInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.GetSyncInfo()
}

func (s *Shared) ABCIInfo() (int64, []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.ABCIInfo()
}

func (s *Shared) ABCIQuery(height uint64, key []byte) (value []byte, found, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.node.ABCIQuery(height, key)
}

func (s *Shared) Validators() *cmttypes.ValidatorSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blk, _ := s.node.GetBlock(0)
	return blk.ValidatorSet
}

func (s *Shared) Grow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.node.Grow()
}

func (s *Shared) BroadcastTxCommit(tx []byte) (*BroadcastTxResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.node.BroadcastTxCommit(tx)
}

// InitClient seeds a client's type and state under the write lock,
// used at startup to materialise the config file's `clients` list —
// grounded on the original source's init() routine.
func (s *Shared) InitClient(clientID, clientType string, clientState []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.node.chain.Store()
	st.Set(clientTypePath(clientID), []byte(clientType))
	st.Set(clientStatePath(clientID), clientState)
}
