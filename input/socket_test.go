package input

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroswipe/aeroswipe/gesture"
)

func newTestSource(t *testing.T) (*SocketSource, string) {
	t.Helper()

	dir, err := os.MkdirTemp("", "aeroswipe")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path := filepath.Join(dir, "touch.sock")
	source, err := NewSocketSource(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = source.Close() })

	return source, path
}

func recvFrame(t *testing.T, source *SocketSource) []gesture.Touch {
	t.Helper()
	select {
	case frame := <-source.Frames():
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestSocketSource_DeliversFrames(t *testing.T) {
	source, path := newTestSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = source.Run(ctx) }()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(`{"touches":[{"id":1,"x":0.25,"y":0.5,"phase":"moved"},{"id":2,"x":0.35,"y":0.5,"phase":"moved"}]}` + "\n"))
	require.NoError(t, err)

	frame := recvFrame(t, source)
	require.Len(t, frame, 2)
	assert.Equal(t, 1, frame[0].ID)
	assert.Equal(t, 0.25, frame[0].X)
	assert.Equal(t, gesture.PhaseMoved, frame[0].Phase)
}

func TestSocketSource_SkipsMalformedLines(t *testing.T) {
	source, path := newTestSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = source.Run(ctx) }()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("not json\n" + `{"touches":[{"id":3,"x":0.1,"y":0.2,"phase":"ended"}]}` + "\n"))
	require.NoError(t, err)

	frame := recvFrame(t, source)
	require.Len(t, frame, 1)
	assert.Equal(t, gesture.PhaseEnded, frame[0].Phase)
}

func TestSocketSource_ServesHelperReconnect(t *testing.T) {
	source, path := newTestSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = source.Run(ctx) }()

	for i := 0; i < 2; i++ {
		conn, err := net.Dial("unix", path)
		require.NoError(t, err)

		_, err = conn.Write([]byte(`{"touches":[{"id":1,"x":0.5,"y":0.5,"phase":"began"}]}` + "\n"))
		require.NoError(t, err)

		frame := recvFrame(t, source)
		assert.Len(t, frame, 1)
		require.NoError(t, conn.Close())
	}
}

func TestSocketSource_RunStopsOnCancel(t *testing.T) {
	source, _ := newTestSource(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- source.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestNewSocketSource_ReplacesStaleSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "aeroswipe")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "touch.sock")

	first, err := NewSocketSource(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// leave a stale socket file behind
	require.NoError(t, os.WriteFile(path, nil, 0600))

	second, err := NewSocketSource(path)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
