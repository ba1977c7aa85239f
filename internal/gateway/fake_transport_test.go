package gateway

import (
	"context"
	"sync"

	"github.com/hendrywilliam/siren/internal/transport"
)

// fakeConn is an in-memory stand-in for a real websocket connection,
// letting the scenario tests drive HELLO/READY/INVALID_SESSION/close
// sequences deterministically without a network socket.
type fakeConn struct {
	toClient chan []byte
	sent     chan []byte

	mu         sync.Mutex
	closed     bool
	closeCh    chan struct{}
	closeErr   error
	closeAsErr bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		toClient: make(chan []byte, 32),
		sent:     make(chan []byte, 32),
		closeCh:  make(chan struct{}),
	}
}

func (c *fakeConn) Read(ctx context.Context) ([]byte, error) {
	select {
	case b := <-c.toClient:
		return b, nil
	case <-c.closeCh:
		c.mu.Lock()
		err := c.closeErr
		c.mu.Unlock()
		if err == nil {
			err = transport.ErrConnClosed
		}
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *fakeConn) Write(ctx context.Context, b []byte) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return transport.ErrConnClosed
	}
	select {
	case c.sent <- b:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	close(c.closeCh)
	return nil
}

// push delivers a server->client frame.
func (c *fakeConn) push(b []byte) {
	c.toClient <- b
}

// closeWithError simulates the remote end dropping the connection with a
// given error (e.g. a close-code error from transport.CloseCode).
func (c *fakeConn) closeWithError(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.closeErr = err
	c.mu.Unlock()
	close(c.closeCh)
}

type fakeDialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	next  int
}

func newFakeDialer(conns ...*fakeConn) *fakeDialer {
	return &fakeDialer{conns: conns}
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (transport.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next >= len(d.conns) {
		return nil, context.DeadlineExceeded
	}
	c := d.conns[d.next]
	d.next++
	return c, nil
}
