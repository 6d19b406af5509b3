package grpcapi

import (
	"context"
	"testing"
)

func TestStakingParamsWireRoundTrip(t *testing.T) {
	want := &StakingParams{
		BondDenom:            "bond_denom",
		MaxEntries:           3,
		MaxValidators:        3,
		HistoricalEntries:    0,
		UnbondingTimeSeconds: stakingThirtyDays,
	}
	got := &StakingParams{}
	if err := got.UnmarshalWire(want.MarshalWire()); err != nil {
		t.Fatalf("UnmarshalWire: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestStakingQueryServerParams(t *testing.T) {
	s := StakingQueryServer{}
	resp, err := s.Params(context.Background(), &StakingParamsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Params.BondDenom != "bond_denom" || resp.Params.MaxValidators != 3 {
		t.Fatalf("unexpected fixed params: %+v", resp.Params)
	}
	if resp.Params.UnbondingTimeSeconds != 30*24*60*60 {
		t.Fatalf("expected a 30-day unbonding time, got %d seconds", resp.Params.UnbondingTimeSeconds)
	}
}

func TestAuthQueryServerAccount(t *testing.T) {
	s := AuthQueryServer{}
	resp, err := s.Account(context.Background(), &AuthAccountRequest{Address: "anything"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Account.Address != "ACCOUNT_ADDRESS" || resp.Account.AccountNumber != 42 || resp.Account.Sequence != 42 {
		t.Fatalf("unexpected synthetic account: %+v", resp.Account)
	}
}

func TestBaseAccountWireRoundTrip(t *testing.T) {
	want := &BaseAccount{Address: "ACCOUNT_ADDRESS", AccountNumber: 42, Sequence: 42}
	got := &BaseAccount{}
	if err := got.UnmarshalWire(want.MarshalWire()); err != nil {
		t.Fatalf("UnmarshalWire: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
