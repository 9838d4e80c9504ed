package signaling

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// EndpointPath is the well-known path of the signaling socket on the host.
const EndpointPath = "/ws"

// closeWait bounds the close handshake frame written before the TCP
// connection is dropped.
const closeWait = time.Second

// Socket is the messaging-socket primitive a Client drives. Each call reads
// or writes exactly one text frame.
type Socket interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Dialer opens a Socket to the given URL.
type Dialer interface {
	Dial(ctx context.Context, url string) (Socket, error)
}

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc func(ctx context.Context, url string) (Socket, error)

// Dial calls f(ctx, url).
func (f DialerFunc) Dial(ctx context.Context, url string) (Socket, error) {
	return f(ctx, url)
}

// WebSocketDialer dials the signaling endpoint with gorilla/websocket.
// A nil Dialer uses websocket.DefaultDialer.
type WebSocketDialer struct {
	Dialer *websocket.Dialer
}

// Dial connects to the WebSocket server at url.
func (d WebSocketDialer) Dial(ctx context.Context, url string) (Socket, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to WS server: %w", err)
	}
	return NewWebSocket(conn), nil
}

// NewWebSocket wraps an established gorilla connection as a Socket.
func NewWebSocket(conn *websocket.Conn) Socket {
	return &wsSocket{conn: conn}
}

type wsSocket struct {
	conn *websocket.Conn
}

func (s *wsSocket) ReadMessage() ([]byte, error) {
	_, data, err := s.conn.ReadMessage()
	return data, err
}

func (s *wsSocket) WriteMessage(data []byte) error {
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close sends a normal-closure frame (best effort) and drops the connection.
func (s *wsSocket) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWait))
	return s.conn.Close()
}

// EndpointURL derives the signaling URL from the host serving the UI, e.g.
// "192.168.1.20:8080" → "ws://192.168.1.20:8080/ws". A "wss://" or "https://"
// prefix selects wss; any path on the input is discarded.
func EndpointURL(host string) (string, error) {
	raw := strings.TrimSpace(host)
	if !strings.Contains(raw, "://") {
		raw = "ws://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid host: %q", host)
	}

	scheme := "ws"
	if u.Scheme == "wss" || u.Scheme == "https" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s%s", scheme, u.Host, EndpointPath), nil
}
