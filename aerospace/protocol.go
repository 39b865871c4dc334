// Package aerospace is a client for the AeroSpace window manager's
// command socket. Each call serializes one request, blocks for the matching
// response, and maps the daemon's exit-code convention onto Go errors. A
// transport fault is healed with exactly one reconnect-and-retry.
package aerospace

import (
	"fmt"
	"os/user"
)

// socketPrefix plus the current username yields the daemon's per-user
// socket, e.g. /tmp/bobko.aerospace-alice.sock.
const socketPrefix = "/tmp/bobko.aerospace-"

// Request is one command sent to the daemon. Command is reserved by the
// protocol and always empty; the daemon reads Args like a CLI invocation.
type Request struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Stdin   string   `json:"stdin"`
}

// Response is the daemon's reply. ExitCode follows shell conventions:
// zero means Stdout holds the result, non-zero means Stderr explains why.
type Response struct {
	ExitCode      int32  `json:"exitCode"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	ServerVersion string `json:"serverVersionAndHash"`
}

// DefaultSocketPath derives the daemon socket path for the current user.
func DefaultSocketPath() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current user: %w", err)
	}
	return socketPrefix + u.Username + ".sock", nil
}
