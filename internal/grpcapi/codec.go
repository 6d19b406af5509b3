package grpcapi

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codec implements encoding.Codec for the wireMessage types in this
// package. It is registered under the name "proto" so it replaces
// grpc-go's default codec for every connection that doesn't otherwise
// negotiate a content-subtype, without requiring a dependency on
// generated protoc-gen-go message types.
type codec struct{}

func (codec) Name() string { return "proto" }

func (codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("grpcapi: %T does not implement wireMessage", v)
	}
	return m.MarshalWire(), nil
}

func (codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("grpcapi: %T does not implement wireMessage", v)
	}
	return m.UnmarshalWire(data)
}

func init() {
	encoding.RegisterCodec(codec{})
}
