// Package txmsg defines the domain messages broadcast_tx_commit applies
// against the keeper adapter. A transaction body is a JSON array of
// Envelope values; each envelope's Value decodes into one of the
// concrete message types below, chosen by its Type tag.
package txmsg

import "encoding/json"

// Envelope is the wire shape of one message within a transaction body.
type Envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Message types recognised by the keeper adapter. Grounded on the IBC
// client/connection lifecycle the original tendermock's ClientKeeper
// trait and init() routine exercise: a client is created, later updated
// with a new consensus state, and a connection handshake progresses
// through init and ack.
const (
	TypeCreateClient = "create_client"
	TypeUpdateClient = "update_client"
	TypeConnOpenInit = "conn_open_init"
	TypeConnOpenAck  = "conn_open_ack"
)

// CreateClient stores a new client's type and initial state.
type CreateClient struct {
	ClientID    string `json:"client_id"`
	ClientType  string `json:"client_type"`
	ClientState []byte `json:"client_state"`
}

// UpdateClient records a new consensus state for an existing client at
// a given height.
type UpdateClient struct {
	ClientID       string `json:"client_id"`
	Height         uint64 `json:"height"`
	ConsensusState []byte `json:"consensus_state"`
}

// ConnOpenInit begins a connection handshake against an existing client.
type ConnOpenInit struct {
	ConnectionID string `json:"connection_id"`
	ClientID     string `json:"client_id"`
	ConnectionEnd []byte `json:"connection_end"`
}

// ConnOpenAck records the host's end of a handshake, completing the
// connection-to-client index.
type ConnOpenAck struct {
	ConnectionID string `json:"connection_id"`
	ClientID     string `json:"client_id"`
	ConnectionEnd []byte `json:"connection_end"`
}
