package jsonrpc

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/certen/tendermock/internal/rpcerr"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades to a duplex connection on /websocket and
// serves the same envelope over text frames, one request per frame.
// `subscribe` is acknowledged with an empty object and no events are
// ever pushed; every other method is dispatched to the same handlers
// as POST /.
func (s *Server) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	if s.verbose {
		log.Printf("jsonrpc: websocket %s connected", connID)
		defer log.Printf("jsonrpc: websocket %s closed", connID)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			_ = conn.WriteJSON(Response{
				JSONRPC: "2.0",
				Error:   &errorObject{Code: -32600, Message: "malformed request"},
			})
			continue
		}
		if req.JSONRPC != "2.0" || req.Method == "" {
			_ = conn.WriteJSON(Response{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error:   &errorObject{Code: rpcerr.InvalidRequest.Code(), Message: `jsonrpc must be "2.0" and method must be set`},
			})
			continue
		}

		if req.Method == "subscribe" {
			_ = conn.WriteJSON(Response{JSONRPC: "2.0", ID: req.ID, Result: struct{}{}})
			continue
		}

		result, err := s.dispatchForWS(req)
		if err != nil {
			_ = conn.WriteJSON(Response{JSONRPC: "2.0", ID: req.ID, Error: toErrorObject(err)})
			continue
		}
		_ = conn.WriteJSON(Response{JSONRPC: "2.0", ID: req.ID, Result: result})
	}
}

func (s *Server) dispatchForWS(req Request) (any, error) {
	h, ok := handlers[req.Method]
	if !ok {
		return nil, rpcerr.New(rpcerr.MethodNotFound, "unknown method %s", req.Method)
	}
	if s.metrics != nil {
		s.metrics.RPCRequests.WithLabelValues(req.Method).Inc()
	}
	return h(s, req.Params)
}

func toErrorObject(err error) *errorObject {
	if rpcErr, ok := err.(*rpcerr.Error); ok {
		return &errorObject{Code: rpcErr.Kind.Code(), Message: rpcErr.Message}
	}
	return &errorObject{Code: rpcerr.ServerError.Code(), Message: err.Error()}
}
