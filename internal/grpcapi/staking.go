package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protowire"
)

// StakingParamsRequest is empty on the wire; cosmos-sdk's
// QueryParamsRequest carries no fields.
type StakingParamsRequest struct{}

func (*StakingParamsRequest) MarshalWire() []byte        { return nil }
func (*StakingParamsRequest) UnmarshalWire([]byte) error { return nil }

// StakingParams mirrors cosmos-sdk's staking Params message, trimmed to
// the fields spec section 6.3 fixes a value for.
type StakingParams struct {
	UnbondingTimeSeconds uint64
	MaxValidators        uint32
	MaxEntries           uint32
	HistoricalEntries    uint32
	BondDenom            string
}

func (p *StakingParams) MarshalWire() []byte {
	var b []byte
	b = encodeVarint(b, 1, p.UnbondingTimeSeconds)
	b = encodeVarint(b, 2, uint64(p.MaxValidators))
	b = encodeVarint(b, 3, uint64(p.MaxEntries))
	b = encodeVarint(b, 4, uint64(p.HistoricalEntries))
	b = encodeString(b, 5, p.BondDenom)
	return b
}

func (p *StakingParams) UnmarshalWire(data []byte) error {
	return decodeFields(data, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		switch num {
		case 1:
			p.UnbondingTimeSeconds = decodeVarint(raw)
		case 2:
			p.MaxValidators = uint32(decodeVarint(raw))
		case 3:
			p.MaxEntries = uint32(decodeVarint(raw))
		case 4:
			p.HistoricalEntries = uint32(decodeVarint(raw))
		case 5:
			p.BondDenom = string(raw)
		}
		return nil
	})
}

// StakingParamsResponse wraps a StakingParams.
type StakingParamsResponse struct {
	Params *StakingParams
}

func (r *StakingParamsResponse) MarshalWire() []byte {
	var b []byte
	b = encodeMessage(b, 1, r.Params)
	return b
}

func (r *StakingParamsResponse) UnmarshalWire(data []byte) error {
	return decodeFields(data, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		if num == 1 {
			r.Params = &StakingParams{}
			return r.Params.UnmarshalWire(raw)
		}
		return nil
	})
}

// unimplementedRequest/-Response stand in for every staking query this
// mock never answers; their wire shape never matters because every
// handler using them returns codes.Unimplemented before touching the
// payload.
type unimplementedRequest struct{}

func (*unimplementedRequest) MarshalWire() []byte        { return nil }
func (*unimplementedRequest) UnmarshalWire([]byte) error { return nil }

type unimplementedResponse struct{}

func (*unimplementedResponse) MarshalWire() []byte        { return nil }
func (*unimplementedResponse) UnmarshalWire([]byte) error { return nil }

// stakingThirtyDays is the fixed unbonding_time spec section 6.3 names.
const stakingThirtyDays = uint64(30 * 24 * 60 * 60)

// StakingQueryServer implements cosmos-sdk's staking Query service.
// Every method is unimplemented except Params, which returns a fixed
// envelope, per spec section 6.3.
type StakingQueryServer struct{}

func (StakingQueryServer) Params(ctx context.Context, req *StakingParamsRequest) (*StakingParamsResponse, error) {
	return &StakingParamsResponse{Params: &StakingParams{
		BondDenom:            "bond_denom",
		MaxEntries:           3,
		MaxValidators:        3,
		HistoricalEntries:    0,
		UnbondingTimeSeconds: stakingThirtyDays,
	}}, nil
}

func unimplementedHandler(name string) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		var req unimplementedRequest
		if err := dec(&req); err != nil {
			return nil, err
		}
		return nil, status.Errorf(codes.Unimplemented, "%s is not implemented", name)
	}
}

// StakingServiceDesc is the hand-written grpc.ServiceDesc for
// cosmos.staking.v1beta1.Query, covering every RPC the original
// source's staking::Query trait lists.
var StakingServiceDesc = grpc.ServiceDesc{
	ServiceName: "cosmos.staking.v1beta1.Query",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Params",
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				var req StakingParamsRequest
				if err := dec(&req); err != nil {
					return nil, err
				}
				s := srv.(StakingQueryServer)
				return s.Params(ctx, &req)
			},
		},
		{MethodName: "Validator", Handler: unimplementedHandler("staking/Validator")},
		{MethodName: "Validators", Handler: unimplementedHandler("staking/Validators")},
		{MethodName: "ValidatorDelegations", Handler: unimplementedHandler("staking/ValidatorDelegations")},
		{MethodName: "ValidatorUnbondingDelegations", Handler: unimplementedHandler("staking/ValidatorUnbondingDelegations")},
		{MethodName: "Delegation", Handler: unimplementedHandler("staking/Delegation")},
		{MethodName: "UnbondingDelegation", Handler: unimplementedHandler("staking/UnbondingDelegation")},
		{MethodName: "DelegatorValidator", Handler: unimplementedHandler("staking/DelegatorValidator")},
		{MethodName: "DelegatorDelegations", Handler: unimplementedHandler("staking/DelegatorDelegations")},
		{MethodName: "DelegatorUnbondingDelegations", Handler: unimplementedHandler("staking/DelegatorUnbondingDelegations")},
		{MethodName: "Redelegations", Handler: unimplementedHandler("staking/Redelegations")},
		{MethodName: "DelegatorValidators", Handler: unimplementedHandler("staking/DelegatorValidators")},
		{MethodName: "HistoricalInfo", Handler: unimplementedHandler("staking/HistoricalInfo")},
		{MethodName: "Pool", Handler: unimplementedHandler("staking/Pool")},
	},
	Metadata: "tendermock/staking.proto",
}
