package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protowire"
)

// AuthAccountRequest carries the bech32 address cosmos-sdk's
// QueryAccountRequest would, even though this mock ignores it and
// always answers with the same synthetic account.
type AuthAccountRequest struct {
	Address string
}

func (r *AuthAccountRequest) MarshalWire() []byte {
	var b []byte
	b = encodeString(b, 1, r.Address)
	return b
}

func (r *AuthAccountRequest) UnmarshalWire(data []byte) error {
	return decodeFields(data, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		if num == 1 {
			r.Address = string(raw)
		}
		return nil
	})
}

// BaseAccount mirrors cosmos-sdk's auth BaseAccount, trimmed to the
// fields spec section 6.3 fixes a value for (pub_key stays absent).
type BaseAccount struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

func (a *BaseAccount) MarshalWire() []byte {
	var b []byte
	b = encodeString(b, 1, a.Address)
	b = encodeVarint(b, 3, a.AccountNumber)
	b = encodeVarint(b, 4, a.Sequence)
	return b
}

func (a *BaseAccount) UnmarshalWire(data []byte) error {
	return decodeFields(data, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		switch num {
		case 1:
			a.Address = string(raw)
		case 3:
			a.AccountNumber = decodeVarint(raw)
		case 4:
			a.Sequence = decodeVarint(raw)
		}
		return nil
	})
}

// AuthAccountResponse wraps a BaseAccount.
type AuthAccountResponse struct {
	Account *BaseAccount
}

func (r *AuthAccountResponse) MarshalWire() []byte {
	var b []byte
	b = encodeMessage(b, 1, r.Account)
	return b
}

func (r *AuthAccountResponse) UnmarshalWire(data []byte) error {
	return decodeFields(data, func(num protowire.Number, typ protowire.Type, raw []byte) error {
		if num == 1 {
			r.Account = &BaseAccount{}
			return r.Account.UnmarshalWire(raw)
		}
		return nil
	})
}

// AuthQueryServer implements cosmos-sdk's auth Query service: Account
// returns a fixed synthetic account, Params is unimplemented, per spec
// section 6.3.
type AuthQueryServer struct{}

func (AuthQueryServer) Account(ctx context.Context, req *AuthAccountRequest) (*AuthAccountResponse, error) {
	return &AuthAccountResponse{Account: &BaseAccount{
		Address:       "ACCOUNT_ADDRESS",
		AccountNumber: 42,
		Sequence:      42,
	}}, nil
}

// AuthServiceDesc is the hand-written grpc.ServiceDesc for
// cosmos.auth.v1beta1.Query.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: "cosmos.auth.v1beta1.Query",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Account",
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				var req AuthAccountRequest
				if err := dec(&req); err != nil {
					return nil, err
				}
				s := srv.(AuthQueryServer)
				return s.Account(ctx, &req)
			},
		},
		{MethodName: "Params", Handler: unimplementedAuthParams},
	},
	Metadata: "tendermock/auth.proto",
}

func unimplementedAuthParams(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	var req unimplementedRequest
	if err := dec(&req); err != nil {
		return nil, err
	}
	return nil, status.Errorf(codes.Unimplemented, "auth/Params is not implemented")
}
