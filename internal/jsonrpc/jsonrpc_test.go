package jsonrpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/certen/tendermock/internal/node"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	n := node.New("tendermock-test", "donald_duck", cmttypes.ConsensusParams{})
	return NewServer(node.NewShared(n), nil)
}

func postJSON(t *testing.T, s *Server, method string) map[string]any {
	t.Helper()
	body, _ := json.Marshal(Request{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`"1"`),
		Method:  method,
		Params:  json.RawMessage(`{}`),
	})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestStatusReportsHeightOne(t *testing.T) {
	s := newTestServer(t)
	resp := postJSON(t, s, "status")
	if _, hasErr := resp["error"]; hasErr {
		t.Fatalf("unexpected error: %+v", resp["error"])
	}
	result, ok := resp["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected a result object, got %+v", resp)
	}
	syncInfo, ok := result["sync_info"].(map[string]any)
	if !ok {
		t.Fatalf("expected sync_info object, got %+v", result)
	}
	if syncInfo["latest_block_height"] != "1" {
		t.Fatalf("expected latest_block_height \"1\", got %v", syncInfo["latest_block_height"])
	}
}

func TestUnknownMethodReturnsMethodNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := postJSON(t, s, "no_such_method")
	errObj, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected an error object, got %+v", resp)
	}
	if code, _ := errObj["code"].(float64); int(code) != -32601 {
		t.Fatalf("expected code -32601, got %v", errObj["code"])
	}
}

func TestABCIQueryMissReportsCodeOne(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(Request{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`"1"`),
		Method:  "abci_query",
		Params:  json.RawMessage(`{"path":"","data":"bm9wZQ=="}`),
	})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	result := out["result"].(map[string]any)
	response := result["response"].(map[string]any)
	if code, _ := response["code"].(float64); int(code) != 1 {
		t.Fatalf("expected a miss to report code 1, got %v", response["code"])
	}
}
