// Package input delivers raw multi-touch frames to the gesture pipeline.
// The frames originate in a small native helper that has access to the
// trackpad; it connects to a per-user unix socket and streams one JSON
// frame per line.
package input

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"

	"github.com/aeroswipe/aeroswipe/gesture"
	"github.com/aeroswipe/aeroswipe/utils"
)

// frameBuffer bounds how many frames may queue while the engine is busy
// inside a switch round trip.
const frameBuffer = 64

// Frame is one decoded line from the touch helper.
type Frame struct {
	Touches []gesture.Touch `json:"touches"`
}

// Source is anything that produces touch frames for the engine.
type Source interface {
	Frames() <-chan []gesture.Touch
	Run(ctx context.Context) error
	Close() error
}

// SocketSource accepts the touch helper on a unix socket and decodes its
// frame stream. Only one helper is served at a time; a new connection
// replaces a finished one.
type SocketSource struct {
	path     string
	listener net.Listener
	frames   chan []gesture.Touch
}

// NewSocketSource binds the frame socket at path, replacing a stale socket
// file from a previous run.
func NewSocketSource(path string) (*SocketSource, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	return &SocketSource{
		path:     path,
		listener: listener,
		frames:   make(chan []gesture.Touch, frameBuffer),
	}, nil
}

// Frames returns the decoded frame stream. The channel is closed when Run
// returns.
func (s *SocketSource) Frames() <-chan []gesture.Touch {
	return s.frames
}

// Run accepts helper connections until the context is cancelled or the
// listener is closed.
func (s *SocketSource) Run(ctx context.Context) error {
	defer close(s.frames)

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		utils.Verbose("touch helper connected on %s", s.path)
		s.readFrames(ctx, conn)
		utils.Verbose("touch helper disconnected")
	}
}

func (s *SocketSource) readFrames(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var frame Frame
		if err := json.Unmarshal(line, &frame); err != nil {
			utils.Warn("dropping malformed touch frame: %v", err)
			continue
		}

		select {
		case s.frames <- frame.Touches:
		case <-ctx.Done():
			return
		}
	}
}

// Close shuts the listener down and removes the socket file.
func (s *SocketSource) Close() error {
	err := s.listener.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}
