package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesOriginalDefaults(t *testing.T) {
	cfg := Default()
	if cfg.ChainID != "tendermock" {
		t.Fatalf("unexpected default chain id %q", cfg.ChainID)
	}
	if cfg.ConsensusParams.Block.MaxBytes != 22020096 {
		t.Fatalf("unexpected default max_bytes %d", cfg.ConsensusParams.Block.MaxBytes)
	}
	if cfg.ConsensusParams.Evidence.MaxAgeNumBlocks != 10000 {
		t.Fatalf("unexpected default max_age_num_blocks %d", cfg.ConsensusParams.Evidence.MaxAgeNumBlocks)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"chain_id":"x","bogus_field":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unrecognised field")
	}
}

func TestLoadOverridesChainID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"chain_id":"custom-chain"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChainID != "custom-chain" {
		t.Fatalf("expected overridden chain id, got %q", cfg.ChainID)
	}
	if cfg.ConsensusParams.Block.MaxBytes != 22020096 {
		t.Fatal("expected unset fields to retain defaults")
	}
}
