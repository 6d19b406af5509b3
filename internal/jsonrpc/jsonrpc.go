// Package jsonrpc implements the JSON-RPC 2.0 surface of spec section
// 6.1: one POST / entrypoint dispatching by method name, plus (in
// ws.go) the /websocket duplex variant.
package jsonrpc

import (
	"encoding/json"
	"net/http"

	"github.com/cometbft/cometbft/p2p"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/certen/tendermock/internal/metrics"
	"github.com/certen/tendermock/internal/node"
	"github.com/certen/tendermock/internal/rpcerr"
)

// Request is the JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is the JSON-RPC 2.0 response envelope. Exactly one of
// Result or Error is populated.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *errorObject    `json:"error,omitempty"`
}

type errorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server dispatches JSON-RPC requests against a Shared Node.
type Server struct {
	node    *node.Shared
	metrics *metrics.Metrics
	verbose bool
}

// NewServer builds a Server bound to n, recording per-method counters
// on m (which may be nil, disabling metrics).
func NewServer(n *node.Shared, m *metrics.Metrics) *Server {
	return &Server{node: n, metrics: m}
}

// SetVerbose toggles connection-lifecycle logging on the WebSocket
// handler.
func (s *Server) SetVerbose(v bool) *Server {
	s.verbose = v
	return s
}

type handlerFunc func(s *Server, params json.RawMessage) (any, error)

var handlers = map[string]handlerFunc{
	"block":                (*Server).handleBlock,
	"commit":               (*Server).handleCommit,
	"genesis":              (*Server).handleGenesis,
	"validators":           (*Server).handleValidators,
	"status":               (*Server).handleStatus,
	"abci_info":            (*Server).handleABCIInfo,
	"abci_query":           (*Server).handleABCIQuery,
	"broadcast_tx_commit":  (*Server).handleBroadcastTxCommit,
}

// ServeHTTP implements http.Handler for the single POST / entrypoint.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeError(w, nil, rpcerr.InvalidRequest, "malformed request body")
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		writeError(w, req.ID, rpcerr.InvalidRequest, `jsonrpc must be "2.0" and method must be set`)
		return
	}
	s.dispatch(w, req)
}

// dispatch resolves req.Method and writes the JSON-RPC response.
// Handlers run fully (decode params, take the node lock, compute,
// release the lock) before this function serializes anything.
func (s *Server) dispatch(w http.ResponseWriter, req Request) {
	h, ok := handlers[req.Method]
	if !ok {
		writeError(w, req.ID, rpcerr.MethodNotFound, "unknown method "+req.Method)
		return
	}
	if s.metrics != nil {
		s.metrics.RPCRequests.WithLabelValues(req.Method).Inc()
	}
	result, err := h(s, req.Params)
	if err != nil {
		if rpcErr, ok := err.(*rpcerr.Error); ok {
			writeError(w, req.ID, rpcErr.Kind, rpcErr.Message)
			return
		}
		writeError(w, req.ID, rpcerr.ServerError, err.Error())
		return
	}
	writeJSON(w, Response{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func writeError(w http.ResponseWriter, id json.RawMessage, kind rpcerr.Kind, message string) {
	writeJSON(w, Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &errorObject{Code: kind.Code(), Message: message},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// --- result shapes, field names per spec.md §6.1 / the original
// source's jrpc/api.rs endpoint responses ---

type blockResult struct {
	BlockID cmttypes.BlockID     `json:"block_id"`
	Block   *lightweightBlock   `json:"block"`
}

// lightweightBlock stands in for a full cometbft types.Block: this mock
// never carries transaction data, and its only "commit" is the one
// signing its own header, so there is no distinct last-commit to embed.
type lightweightBlock struct {
	Header cmttypes.Header `json:"header"`
	Commit cmttypes.Commit `json:"last_commit"`
}

type commitResult struct {
	SignedHeader cmttypes.SignedHeader `json:"signed_header"`
	Canonical    bool                  `json:"canonical"`
}

type genesisDoc struct {
	GenesisTime     any                      `json:"time"`
	ChainID         string                   `json:"chain_id"`
	ConsensusParams cmttypes.ConsensusParams `json:"consensus_params"`
	Validators      []*cmttypes.Validator    `json:"validators"`
	AppHash         []byte                   `json:"app_hash"`
	AppState        any                      `json:"app_state"`
}

type genesisResult struct {
	Genesis genesisDoc `json:"genesis"`
}

type validatorsResult struct {
	BlockHeight int64                 `json:"block_height"`
	Validators  []*cmttypes.Validator `json:"validators"`
}

// syncInfo mirrors real CometBFT RPC's encoding of block heights as
// JSON strings (tmjson encodes int64 this way to stay safe for JS
// number precision); spec scenario 6 relies on this.
type syncInfo struct {
	LatestBlockHash   []byte `json:"latest_block_hash"`
	LatestBlockHeight string `json:"latest_block_height"`
	LatestBlockTime   int64  `json:"latest_block_time"`
	CatchingUp        bool   `json:"catching_up"`
}

type statusResult struct {
	NodeInfo      p2p.DefaultNodeInfo `json:"node_info"`
	SyncInfo      syncInfo            `json:"sync_info"`
	ValidatorInfo *cmttypes.Validator `json:"validator_info"`
}

type abciInfoPayload struct {
	Data             string `json:"data"`
	Version          string `json:"version"`
	AppVersion       uint64 `json:"app_version"`
	LastBlockHeight  int64  `json:"last_block_height"`
	LastBlockAppHash []byte `json:"last_block_app_hash"`
}

type abciInfoResult struct {
	Response abciInfoPayload `json:"response"`
}

type abciQueryPayload struct {
	Code   uint32 `json:"code"`
	Log    string `json:"log"`
	Key    []byte `json:"key"`
	Value  []byte `json:"value"`
	Height int64  `json:"height"`
}

type abciQueryResult struct {
	Response abciQueryPayload `json:"response"`
}

type broadcastTxCommitResult struct {
	CheckTx   map[string]any `json:"check_tx"`
	DeliverTx map[string]any `json:"deliver_tx"`
	Hash      []byte         `json:"hash"`
	Height    int64          `json:"height"`
}
