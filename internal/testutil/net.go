package testutil

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/udisondev/wowee/internal/constants"
)

// ErrSimulated is returned by handlers that fail on purpose.
var ErrSimulated = errors.New("simulated handler failure")

// PipeConn returns the client and world-server ends of an in-memory
// connection. Both ends are closed when the test finishes.
func PipeConn(t testing.TB) (client, server net.Conn) {
	t.Helper()
	server, client = net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	return client, server
}

// ListenTCP starts a loopback listener standing in for a world server and
// returns it with its "host:port".
func ListenTCP(t testing.TB) (net.Listener, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening on loopback: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	return ln, ln.Addr().String()
}

// ContextWithTimeout is cancelled after d, or after TestPipeTimeout when d
// is zero, and always when the test ends.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()
	if d <= 0 {
		d = constants.TestPipeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

// ContextWithCancel is cancelled by the returned func or when the test ends.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}

// ConnWithDeadline sets a fresh deadline before every Read and Write, so a
// stalled peer fails the test instead of hanging it.
type ConnWithDeadline struct {
	net.Conn
	timeout time.Duration
}

// NewConnWithDeadline wraps conn with a per-operation timeout.
func NewConnWithDeadline(conn net.Conn, timeout time.Duration) *ConnWithDeadline {
	return &ConnWithDeadline{Conn: conn, timeout: timeout}
}

func (c *ConnWithDeadline) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func (c *ConnWithDeadline) Write(p []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(p)
}
