package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroswipe/aeroswipe/server"
)

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12800", "http://localhost:12800"},
		{":12800", "http://localhost:12800"},
		{"localhost:12800", "http://localhost:12800"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeAddr(tt.in), "addr %q", tt.in)
	}
}

func TestCall_Success(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req server.JSONRPCRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "status", req.Method)
		assert.NotEmpty(t, req.ID)

		_ = json.NewEncoder(w).Encode(server.JSONRPCResponse{
			JSONRPC: "2.0",
			Result:  map[string]bool{"connected": true},
			ID:      req.ID,
		})
	}))
	defer ts.Close()

	result, err := Call(strings.TrimPrefix(ts.URL, "http://"), "tok", "status", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.JSONEq(t, `{"connected":true}`, string(result))
}

func TestCall_RPCError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"error":   map[string]interface{}{"code": -32000, "message": "Server error", "data": "no eligible workspace found"},
			"id":      1,
		})
	}))
	defer ts.Close()

	_, err := Call(strings.TrimPrefix(ts.URL, "http://"), "", "trigger_next", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no eligible workspace found")
}

func TestCall_NotRunning(t *testing.T) {
	_, err := Call("localhost:1", "", "status", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not running")
}

func TestIsChild(t *testing.T) {
	t.Setenv(DaemonEnvVar, "")
	assert.False(t, IsChild())

	t.Setenv(DaemonEnvVar, "1")
	assert.True(t, IsChild())
}
