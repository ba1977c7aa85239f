package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zlib"
)

// closeWriteWait bounds how long Close waits to flush the close frame.
const closeWriteWait = 2 * time.Second

// zlibFlushSuffix is the 4-byte marker Discord's zlib-stream transport
// appends to the end of each logical payload (a Z_SYNC_FLUSH). A single
// payload can be split across several binary websocket frames, so a
// frame lacking this suffix means more frames are still to come.
var zlibFlushSuffix = []byte{0x00, 0x00, 0xff, 0xff}

// errIncompleteZlibFrame signals that a binary frame was buffered but
// doesn't yet end on a flush boundary; the caller should keep reading.
var errIncompleteZlibFrame = errors.New("transport: incomplete zlib-stream frame")

// GorillaDialer dials Discord's Gateway (or any compatible WebSocket
// endpoint) using gorilla/websocket, the same library the rest of this
// module's transport layer is built on. It is the only place gorilla's
// framing details are allowed to leak out of this package.
type GorillaDialer struct {
	WSDialer       *websocket.Dialer
	Version        int
	Encoding       string
	CompressStream bool
}

func NewGorillaDialer(version int, compressStream bool) *GorillaDialer {
	return &GorillaDialer{
		WSDialer:       websocket.DefaultDialer,
		Version:        version,
		Encoding:       "json",
		CompressStream: compressStream,
	}
}

func (d *GorillaDialer) Dial(ctx context.Context, gatewayURL string) (Conn, error) {
	u, err := url.Parse(gatewayURL)
	if err != nil {
		return nil, fmt.Errorf("transport: parse gateway url: %w", err)
	}
	q := u.Query()
	q.Set("v", fmt.Sprintf("%d", d.Version))
	q.Set("encoding", d.Encoding)
	if d.CompressStream {
		q.Set("compress", "zlib-stream")
	}
	u.RawQuery = q.Encode()

	conn, _, err := d.WSDialer.DialContext(ctx, u.String(), http.Header{})
	if err != nil {
		return nil, fmt.Errorf("transport: dial gateway: %w", err)
	}
	return &gorillaConn{conn: conn, zlibStream: d.CompressStream}, nil
}

// gorillaConn adapts *websocket.Conn to the Conn interface, funnelling every
// read and write through this single type so the rest of the gateway engine
// never touches gorilla/websocket directly.
type gorillaConn struct {
	conn       *websocket.Conn
	zlibStream bool
	zr         io.ReadCloser
	zbuf       bytes.Buffer
}

func (c *gorillaConn) Read(ctx context.Context) ([]byte, error) {
	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType != websocket.BinaryMessage || !c.zlibStream {
			return message, nil
		}
		out, err := c.inflate(message)
		if errors.Is(err, errIncompleteZlibFrame) {
			continue
		}
		return out, err
	}
}

// inflate decodes a zlib-stream compressed payload. Discord's zlib-stream
// mode reuses a single deflate context across the life of the connection
// and may split one logical payload across several binary frames, so
// every frame is appended to zbuf and the deflate reader (created once,
// wrapping zbuf) is only drained once the frame ends on a flush boundary.
func (c *gorillaConn) inflate(message []byte) ([]byte, error) {
	c.zbuf.Write(message)
	if !bytes.HasSuffix(message, zlibFlushSuffix) {
		return nil, errIncompleteZlibFrame
	}
	if c.zr == nil {
		zr, err := zlib.NewReader(&c.zbuf)
		if err != nil {
			return nil, fmt.Errorf("transport: zlib init: %w", err)
		}
		c.zr = zr
	}
	return io.ReadAll(c.zr)
}

func (c *gorillaConn) Write(ctx context.Context, message []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Close sends a close frame and tears down the socket. gorilla/websocket
// only guarantees WriteControl (not WriteMessage) and Close are safe to
// call concurrently with an in-flight WriteMessage from the writer
// goroutine, so the close frame must go out through WriteControl rather
// than racing writeLoop's WriteMessage calls on the same *websocket.Conn.
func (c *gorillaConn) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(closeWriteWait))
	return c.conn.Close()
}

// CloseCode extracts the close code from a websocket close error, if any.
func CloseCode(err error) (int, bool) {
	if ce, ok := err.(*websocket.CloseError); ok {
		return ce.Code, true
	}
	return 0, false
}
