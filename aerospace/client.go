package aerospace

import (
	"encoding/json"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/aeroswipe/aeroswipe/utils"
)

// Client is a single-connection client for the AeroSpace command socket.
// Calls are serialized: one request is in flight at a time, and each blocks
// until its response is read. There is deliberately no timeout; the socket
// is local and the daemon answers immediately or not at all.
type Client struct {
	path string

	mu        sync.Mutex
	conn      net.Conn
	enc       *json.Encoder
	dec       *json.Decoder
	connected atomic.Bool

	serverVersion string
}

// NewClient returns a client for path. Use DefaultSocketPath to target the
// current user's daemon.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Connect establishes the socket connection. With an existing connection it
// is a no-op unless force is set, in which case the old connection is torn
// down and replaced.
func (c *Client) Connect(force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !force {
		return nil
	}
	return c.reconnectLocked()
}

// reconnectLocked replaces the connection in place. Caller holds c.mu.
func (c *Client) reconnectLocked() error {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.connected.Store(false)
	}

	conn, err := net.Dial("unix", c.path)
	if err != nil {
		return &ConnectionError{Err: err}
	}

	c.conn = conn
	c.enc = json.NewEncoder(conn)
	c.dec = json.NewDecoder(conn)
	c.connected.Store(true)
	utils.Verbose("connected to aerospace socket %s", c.path)
	return nil
}

// Connected reports whether the socket is currently established. It is safe
// to read from any goroutine.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Path returns the socket path this client targets.
func (c *Client) Path() string {
	return c.path
}

// ServerVersion returns the daemon version string from the most recent
// response, or "" before the first successful round trip.
func (c *Client) ServerVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverVersion
}

// Close tears down the connection. Subsequent sends fail until Connect.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.connected.Store(false)
	return err
}

// Send issues one command and returns the daemon's stdout. A transport
// fault on the first attempt triggers exactly one reconnect and a full
// retry; a second fault yields ConnectionError. A response with a non-zero
// exit code yields CommandError, and an undecodable response ProtocolError.
func (c *Client) Send(args []string, stdin string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return "", &ConnectionError{}
	}

	req := Request{Args: args, Stdin: stdin}

	resp, err := c.roundTripLocked(req)
	if err != nil && isTransportFault(err) {
		utils.Verbose("transport fault on %v, reconnecting once: %v", args, err)
		if rerr := c.reconnectLocked(); rerr != nil {
			return "", rerr
		}
		resp, err = c.roundTripLocked(req)
	}
	if err != nil {
		if isTransportFault(err) {
			c.connected.Store(false)
			return "", &ConnectionError{Err: err}
		}
		return "", &ProtocolError{Err: err}
	}

	c.serverVersion = resp.ServerVersion
	if resp.ExitCode != 0 {
		return "", &CommandError{Stderr: resp.Stderr}
	}
	return resp.Stdout, nil
}

// roundTripLocked writes one request and reads one response. Caller holds
// c.mu and has verified the connection exists.
func (c *Client) roundTripLocked(req Request) (Response, error) {
	var resp Response
	if err := c.enc.Encode(req); err != nil {
		return resp, err
	}
	if err := c.dec.Decode(&resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// isTransportFault separates socket-level faults (retryable via reconnect)
// from payload-level decode faults (not retryable).
func isTransportFault(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return false
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return false
	}
	return true
}
