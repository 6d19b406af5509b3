// Package rpcerr defines the structured error vocabulary used by the
// node and the JSON-RPC adapter, and maps it onto JSON-RPC 2.0 error
// codes. The gRPC adapter does not use it.
package rpcerr

import "fmt"

// Kind enumerates the ways an RPC handler can fail.
type Kind int

const (
	// InvalidRequest means the envelope itself was malformed (missing
	// method, wrong jsonrpc version, unparseable JSON).
	InvalidRequest Kind = iota
	// MethodNotFound means the dispatched method has no handler.
	MethodNotFound
	// InvalidParams means the envelope parsed but its params didn't
	// decode into the shape the method expects.
	InvalidParams
	// HeightOutOfRange means a height parameter missed the store's or
	// chain's dispatch window.
	HeightOutOfRange
	// KeyAbsent means an abci_query lookup missed. Handlers must encode
	// this as a successful result with a not-found code, never as an
	// error envelope — see Kind.Code.
	KeyAbsent
	// DecodeFailure means a transaction body or domain message failed
	// to decode.
	DecodeFailure
	// ApplyFailure means a decoded domain message was rejected by the
	// keeper adapter. The adapter rejects unknown message types only; it
	// does not check that client or connection ids exist.
	ApplyFailure
	// ServerError is the catch-all for internal failures not better
	// described by one of the above.
	ServerError
)

// Code returns the JSON-RPC 2.0 error code for k. KeyAbsent has no
// error code of its own; callers must not build an Error from it.
func (k Kind) Code() int {
	switch k {
	case InvalidRequest:
		return -32600
	case MethodNotFound:
		return -32601
	case InvalidParams:
		return -32605
	default:
		return -32000
	}
}

func (k Kind) String() string {
	switch k {
	case InvalidRequest:
		return "invalid request"
	case MethodNotFound:
		return "method not found"
	case InvalidParams:
		return "invalid params"
	case HeightOutOfRange:
		return "height out of range"
	case KeyAbsent:
		return "key absent"
	case DecodeFailure:
		return "decode failure"
	case ApplyFailure:
		return "apply failure"
	default:
		return "server error"
	}
}

// Error is a structured RPC failure carrying both the Kind (which picks
// the JSON-RPC error code) and a human-readable message (for the
// JSON-RPC error envelope).
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	// ErrServerError is returned by Node operations that fail for
	// reasons opaque to the caller (e.g. a broadcast_tx_commit rollback).
	ErrServerError = New(ServerError, "internal server error")
)
