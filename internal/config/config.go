// Package config decodes the node's JSON configuration file, exactly
// the fields spec section 6.5 recognises, rejecting anything else.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	cmttypes "github.com/cometbft/cometbft/types"
)

// Client identifies one IBC client the node should seed at startup.
type Client struct {
	ID string `json:"id"`
}

// Config is the recognised shape of the configuration file. Unknown
// fields are rejected by Load via DisallowUnknownFields.
type Config struct {
	ChainID         string                  `json:"chain_id"`
	HostClient      Client                  `json:"host_client"`
	Clients         []Client                `json:"clients"`
	ConsensusParams cmttypes.ConsensusParams `json:"consensus_params"`
}

// Default mirrors the original tendermock's default configuration.
func Default() Config {
	return Config{
		ChainID:         "tendermock",
		HostClient:      Client{ID: "donald_duck"},
		Clients:         nil,
		ConsensusParams: defaultConsensusParams(),
	}
}

func defaultConsensusParams() cmttypes.ConsensusParams {
	return cmttypes.ConsensusParams{
		Block: cmttypes.BlockParams{
			MaxBytes: 22020096,
			MaxGas:   1000,
		},
		Evidence: cmttypes.EvidenceParams{
			MaxAgeNumBlocks: 10000,
			MaxAgeDuration:  time.Hour,
			MaxBytes:        10000,
		},
		Validator: cmttypes.ValidatorParams{
			PubKeyTypes: []string{cmttypes.ABCIPubKeyTypeEd25519},
		},
	}
}

// Load reads and strictly decodes the configuration file at path,
// starting from Default() so unset fields keep their defaults. An
// empty path returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
