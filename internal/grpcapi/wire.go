// Package grpcapi hand-rolls the minimal Cosmos-SDK-shaped gRPC query
// services (staking, auth) spec section 6.3 calls for. No generated
// protobuf stubs are available in this module's dependency set, so
// messages marshal themselves directly atop
// google.golang.org/protobuf/encoding/protowire — the same primitive
// protoc-gen-go output is built on — registered under a codec that
// google.golang.org/grpc dispatches to via content-subtype "proto".
package grpcapi

import "google.golang.org/protobuf/encoding/protowire"

// wireMessage is satisfied by every request/response type in this
// package; codec dispatches to it directly instead of reflecting
// over protobuf field tags.
type wireMessage interface {
	MarshalWire() []byte
	UnmarshalWire([]byte) error
}

// encodeString appends a length-delimited string field, skipping empty
// values per proto3's default-is-absent convention.
func encodeString(b []byte, field protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	b = protowire.AppendString(b, s)
	return b
}

func encodeBytes(b []byte, field protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	b = protowire.AppendBytes(b, v)
	return b
}

func encodeVarint(b []byte, field protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.VarintType)
	b = protowire.AppendVarint(b, v)
	return b
}

func encodeMessage(b []byte, field protowire.Number, v wireMessage) []byte {
	if v == nil {
		return b
	}
	inner := v.MarshalWire()
	if len(inner) == 0 {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	b = protowire.AppendBytes(b, inner)
	return b
}

// decodeFields walks a flat wire-format message, invoking set for each
// (field, wire type, raw bytes) triple it finds. Unknown fields are
// skipped, matching proto3's forward-compatibility rule.
func decodeFields(data []byte, set func(num protowire.Number, typ protowire.Type, raw []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		var raw []byte
		var consumed int
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			raw = protowire.AppendVarint(nil, v)
			consumed = n
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			raw = v
			consumed = n
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			raw = protowire.AppendFixed64(nil, v)
			consumed = n
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			raw = protowire.AppendFixed32(nil, v)
			consumed = n
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			consumed = n
		}

		if err := set(num, typ, raw); err != nil {
			return err
		}
		data = data[consumed:]
	}
	return nil
}

func decodeVarint(raw []byte) uint64 {
	v, _ := protowire.ConsumeVarint(raw)
	return v
}
