// Package blockgen is the block-generator collaborator the chain engine
// delegates to: deterministic derivation of CometBFT-shaped LightBlocks
// from a seed. The chain engine only ever asks it for "the genesis block"
// or "the block after this one" — it never inspects how headers are built.
package blockgen

import (
	"crypto/sha256"
	"time"

	cmted25519 "github.com/cometbft/cometbft/crypto/ed25519"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/version"
	cmttypes "github.com/cometbft/cometbft/types"
	cmtversion "github.com/cometbft/cometbft/version"
)

// Generator derives a single-validator chain deterministically from a
// chain id: the validator key is GenPrivKeyFromSecret(sha256(chainID)), so
// two Generators built from the same chain id produce byte-identical
// genesis blocks.
type Generator struct {
	chainID    string
	privKey    cmted25519.PrivKey
	validators *cmttypes.ValidatorSet
}

// New returns a Generator seeded by chainID.
func New(chainID string) *Generator {
	seed := sha256.Sum256([]byte(chainID))
	priv := cmted25519.GenPrivKeyFromSecret(seed[:])
	val := cmttypes.NewValidator(priv.PubKey(), 1)
	return &Generator{
		chainID:    chainID,
		privKey:    priv,
		validators: cmttypes.NewValidatorSet([]*cmttypes.Validator{val}),
	}
}

// Validators returns the generator's (static) validator set.
func (g *Generator) Validators() *cmttypes.ValidatorSet {
	return g.validators
}

func fixedHash(label string) cmtbytes.HexBytes {
	h := sha256.Sum256([]byte(label))
	return cmtbytes.HexBytes(h[:])
}

// Genesis returns the height-1 light block. time is truncated to a
// midnight UTC boundary, matching the original tendermock's deterministic
// early-testing fixture.
func (g *Generator) Genesis(now time.Time) *cmttypes.LightBlock {
	header := &cmttypes.Header{
		Version:            cmtproto.Consensus{Block: cmtversion.BlockProtocol, App: 0},
		ChainID:            g.chainID,
		Height:             1,
		Time:               TruncateToDay(now),
		LastBlockID:        cmttypes.BlockID{},
		ValidatorsHash:     g.validators.Hash(),
		NextValidatorsHash: g.validators.Hash(),
		ConsensusHash:      fixedHash("tendermock/consensus"),
		ProposerAddress:    g.validators.Proposer.Address,
	}
	return g.assemble(header)
}

// Next derives the light block following prev: height+1, LastBlockID
// pointing at prev's header hash, time stamped to now.
func (g *Generator) Next(prev *cmttypes.LightBlock, now time.Time) *cmttypes.LightBlock {
	header := &cmttypes.Header{
		Version: prev.Header.Version,
		ChainID: g.chainID,
		Height:  prev.Header.Height + 1,
		Time:    now,
		LastBlockID: cmttypes.BlockID{
			Hash:          prev.Header.Hash(),
			PartSetHeader: cmttypes.PartSetHeader{Total: 1, Hash: prev.Header.Hash()},
		},
		LastCommitHash:     prev.Commit.Hash(),
		ValidatorsHash:     g.validators.Hash(),
		NextValidatorsHash: g.validators.Hash(),
		ConsensusHash:      prev.Header.ConsensusHash,
		AppHash:            prev.Header.AppHash,
		ProposerAddress:    g.validators.Proposer.Address,
	}
	return g.assemble(header)
}

func (g *Generator) assemble(header *cmttypes.Header) *cmttypes.LightBlock {
	blockID := cmttypes.BlockID{
		Hash:          header.Hash(),
		PartSetHeader: cmttypes.PartSetHeader{Total: 1, Hash: header.Hash()},
	}
	sig, _ := g.privKey.Sign(header.Hash())
	commit := &cmttypes.Commit{
		Height:  header.Height,
		Round:   0,
		BlockID: blockID,
		Signatures: []cmttypes.CommitSig{
			{
				BlockIDFlag:      cmttypes.BlockIDFlagCommit,
				ValidatorAddress: g.validators.Proposer.Address,
				Timestamp:        header.Time,
				Signature:        sig,
			},
		},
	}
	return &cmttypes.LightBlock{
		SignedHeader: &cmttypes.SignedHeader{Header: header, Commit: commit},
		ValidatorSet: g.validators,
	}
}

// TruncateToDay truncates t to a midnight-UTC boundary, used to keep the
// chain's construction-time state deterministic across test runs.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
