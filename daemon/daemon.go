// Package daemon detaches the process into the background and gives the
// CLI a client for the control API of a running instance.
package daemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sevlyar/go-daemon"

	"github.com/aeroswipe/aeroswipe/server"
)

// DaemonEnvVar is the environment variable that marks a daemon child process
const DaemonEnvVar = "AEROSWIPE_DAEMON_CHILD"

// callTimeout bounds control-API calls made from the CLI. A switch round
// trip is local and fast; anything slower means a wedged daemon.
const callTimeout = 10 * time.Second

// Daemonize detaches the process and returns the child process handle
// If the returned process is nil, this is the child process
// If the returned process is non-nil, this is the parent process
func Daemonize() (*os.Process, error) {
	// no PID file and no log file; the control server handles logging
	ctx := &daemon.Context{
		WorkDir: "/",
		Umask:   027,
		Args:    os.Args,
		Env:     append(os.Environ(), fmt.Sprintf("%s=1", DaemonEnvVar)),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to daemonize: %w", err)
	}

	return child, nil
}

// IsChild returns true if this is the daemon child process
func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}

// Call sends one JSON-RPC request to a running instance's control API and
// returns the result payload.
func Call(addr, token, method string, params interface{}) (json.RawMessage, error) {
	reqBody := server.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      uuid.NewString(),
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		reqBody.Params = raw
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	client := &http.Client{Timeout: callTimeout}
	req, err := http.NewRequest(http.MethodPost, normalizeAddr(addr)+"/rpc", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "connection refused") {
			return nil, fmt.Errorf("aeroswipe is not running on %s", addr)
		}
		return nil, fmt.Errorf("failed to connect to aeroswipe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("control API returned %s", resp.Status)
	}

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string      `json:"message"`
			Data    interface{} `json:"data"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if rpcResp.Error != nil {
		if rpcResp.Error.Data != nil {
			return nil, fmt.Errorf("%v", rpcResp.Error.Data)
		}
		return nil, fmt.Errorf("%s", rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

// KillServer asks a running instance to shut down.
func KillServer(addr, token string) error {
	_, err := Call(addr, token, "server.shutdown", nil)
	return err
}

// normalizeAddr turns the listen-address forms accepted by the CLI into a
// usable base URL.
func normalizeAddr(addr string) string {
	// a bare port number becomes ":port"
	if !strings.Contains(addr, ":") {
		if _, err := strconv.Atoi(addr); err == nil {
			addr = ":" + addr
		}
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	if !strings.HasPrefix(addr, "http://") {
		addr = "http://" + addr
	}
	return addr
}
