package jsonrpc

import (
	"encoding/json"
	"strconv"

	"github.com/certen/tendermock/internal/rpcerr"
)

func decodeParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return rpcerr.New(rpcerr.InvalidParams, "%v", err)
	}
	return nil
}

type heightParams struct {
	Height *uint64 `json:"height"`
}

func (p heightParams) resolve() uint64 {
	if p.Height == nil {
		return 0
	}
	return *p.Height
}

func (s *Server) handleBlock(params json.RawMessage) (any, error) {
	var p heightParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	blk, ok := s.node.GetBlock(p.resolve())
	if !ok {
		return nil, rpcerr.New(rpcerr.HeightOutOfRange, "no block at that height")
	}
	return blockResult{
		BlockID: blk.Commit.BlockID,
		Block: &lightweightBlock{
			Header: *blk.Header,
			Commit: *blk.Commit,
		},
	}, nil
}

func (s *Server) handleCommit(params json.RawMessage) (any, error) {
	var p heightParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	blk, ok := s.node.GetBlock(p.resolve())
	if !ok {
		return nil, rpcerr.New(rpcerr.HeightOutOfRange, "no block at that height")
	}
	return commitResult{SignedHeader: *blk.SignedHeader, Canonical: false}, nil
}

func (s *Server) handleGenesis(params json.RawMessage) (any, error) {
	blk, ok := s.node.GetBlock(1)
	if !ok {
		return nil, rpcerr.ErrServerError
	}
	return genesisResult{Genesis: genesisDoc{
		GenesisTime:     blk.Header.Time,
		ChainID:         s.node.GetChainID(),
		ConsensusParams: s.node.GetConsensusParams(),
		Validators:      blk.ValidatorSet.Validators,
		AppHash:         nil,
		AppState:        nil,
	}}, nil
}

func (s *Server) handleValidators(params json.RawMessage) (any, error) {
	var p heightParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	blk, ok := s.node.GetBlock(p.resolve())
	if !ok {
		return nil, rpcerr.New(rpcerr.HeightOutOfRange, "no block at that height")
	}
	return validatorsResult{
		BlockHeight: blk.Header.Height,
		Validators:  blk.ValidatorSet.Validators,
	}, nil
}

func (s *Server) handleStatus(params json.RawMessage) (any, error) {
	info := s.node.GetSyncInfo()
	validators := s.node.Validators()
	return statusResult{
		NodeInfo: s.node.GetInfo(),
		SyncInfo: syncInfo{
			LatestBlockHash:   info.LatestBlockHash,
			LatestBlockHeight: strconv.FormatInt(info.LatestBlockHeight, 10),
			LatestBlockTime:   info.LatestBlockTime,
			CatchingUp:        info.CatchingUp,
		},
		ValidatorInfo: validators.Proposer,
	}, nil
}

func (s *Server) handleABCIInfo(params json.RawMessage) (any, error) {
	height, appHash := s.node.ABCIInfo()
	return abciInfoResult{Response: abciInfoPayload{
		Data:             "tendermock",
		Version:          "0.38.0",
		AppVersion:       1,
		LastBlockHeight:  height,
		LastBlockAppHash: appHash,
	}}, nil
}

type abciQueryParams struct {
	Path   string  `json:"path"`
	Data   []byte  `json:"data"`
	Height *uint64 `json:"height"`
	Prove  *bool   `json:"prove"`
}

func (s *Server) handleABCIQuery(params json.RawMessage) (any, error) {
	var p abciQueryParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	height := uint64(0)
	if p.Height != nil {
		height = *p.Height
	}
	value, found, ok := s.node.ABCIQuery(height, p.Data)
	if !ok {
		return nil, rpcerr.New(rpcerr.HeightOutOfRange, "no state at that height")
	}
	if !found {
		return abciQueryResult{Response: abciQueryPayload{
			Code:   1,
			Log:    "does not exist",
			Key:    p.Data,
			Value:  nil,
			Height: int64(height),
		}}, nil
	}
	return abciQueryResult{Response: abciQueryPayload{
		Code:   0,
		Log:    "exists",
		Key:    p.Data,
		Value:  value,
		Height: int64(height),
	}}, nil
}

type broadcastTxCommitParams struct {
	Tx []byte `json:"tx"`
}

func (s *Server) handleBroadcastTxCommit(params json.RawMessage) (any, error) {
	var p broadcastTxCommitParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	result, err := s.node.BroadcastTxCommit(p.Tx)
	if err != nil {
		return nil, err
	}
	return broadcastTxCommitResult{
		CheckTx:   map[string]any{"code": 0},
		DeliverTx: map[string]any{"code": 0},
		Hash:      result.Hash,
		Height:    int64(result.Height),
	}, nil
}
