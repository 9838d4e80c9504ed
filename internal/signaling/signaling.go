// Package signaling implements the property-synchronization client: it owns
// the WebSocket connection to the peer, encodes outbound requests, and routes
// inbound messages to a single registered handler per event category.
//
// A Client holds at most one connection. Connect replaces any previous one,
// closing it first, and never retries on its own; failures are reported
// through OnError and recovery is up to the caller.
package signaling

import (
	"context"
	"sync"

	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/util"
)

// Client is the signaling endpoint shared by the controller and device roles.
//
// Handlers are invoked one at a time, never concurrently with each other,
// from the goroutine that reads the current connection. They may call any
// Client method except HandleMessage, including Connect.
type Client struct {
	url    string
	dialer Dialer

	mu         sync.Mutex
	conn       *connection
	onOpen     func()
	onError    func(error)
	onProperty func(*protocol.Message)

	dispatchMu sync.Mutex
}

// NewClient creates an idle Client for the given signaling URL (see
// EndpointURL). A nil dialer uses gorilla/websocket.
func NewClient(url string, dialer Dialer) *Client {
	if dialer == nil {
		dialer = WebSocketDialer{}
	}
	return &Client{url: url, dialer: dialer}
}

// URL returns the endpoint this client dials.
func (c *Client) URL() string { return c.url }

// OnOpen registers the handler fired once per connection when it opens.
// It replaces any previous handler; nil unregisters.
func (c *Client) OnOpen(fn func()) {
	c.mu.Lock()
	c.onOpen = fn
	c.mu.Unlock()
}

// OnError registers the handler fired when the connection fails. The error
// is a *TransportError. It replaces any previous handler; nil unregisters.
func (c *Client) OnError(fn func(error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

// OnProperty registers the handler for inbound property messages. It
// replaces any previous handler; nil unregisters, after which property
// messages are dropped.
func (c *Client) OnProperty(fn func(*protocol.Message)) {
	c.mu.Lock()
	c.onProperty = fn
	c.mu.Unlock()
}

// Connect closes the current connection, if any, and starts a new one. It
// does not block: the dial runs in the background and its outcome arrives
// through OnOpen or OnError. Cancelling ctx closes the connection.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.close()
	}

	connCtx, cancel := context.WithCancel(ctx)
	conn := &connection{
		client: c,
		ctx:    connCtx,
		cancel: cancel,
		state:  StateConnecting,
	}
	c.conn = conn
	c.mu.Unlock()

	util.LogDebug("connecting to %s", c.url)
	go conn.run()
}

// Close closes the current connection without reporting an error.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.close()
	}
}

// State reports the state of the current connection.
func (c *Client) State() State {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return StateIdle
	}
	return conn.getState()
}

// isCurrent reports whether conn is still the Client's connection.
func (c *Client) isCurrent(conn *connection) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == conn
}

// ---------------------------------------------------------------------------
// connection
// ---------------------------------------------------------------------------

// connection is one socket's lifecycle: Connecting → Open → Closed.
type connection struct {
	client *Client
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  State
	socket Socket

	writeMu sync.Mutex
}

func (cn *connection) getState() State {
	cn.mu.Lock()
	defer cn.mu.Unlock()
	return cn.state
}

// close moves the connection to Closed and releases the socket. It is
// idempotent and does not fire OnError.
func (cn *connection) close() {
	cn.mu.Lock()
	if cn.state == StateClosed {
		cn.mu.Unlock()
		return
	}
	cn.state = StateClosed
	sock := cn.socket
	cn.mu.Unlock()

	cn.cancel()
	if sock != nil {
		_ = sock.Close()
	}
}

// run dials, announces the open connection and then reads frames until the
// socket fails or is closed.
func (cn *connection) run() {
	defer cn.cancel()

	sock, err := cn.client.dialer.Dial(cn.ctx, cn.client.url)
	if err != nil {
		cn.fail("dial", err)
		return
	}

	cn.mu.Lock()
	if cn.state == StateClosed {
		// Replaced or closed while the dial was in flight.
		cn.mu.Unlock()
		_ = sock.Close()
		return
	}
	cn.socket = sock
	cn.state = StateOpen
	cn.mu.Unlock()

	stop := context.AfterFunc(cn.ctx, cn.close)
	defer stop()

	util.LogDebug("connected to %s", cn.client.url)
	cn.client.dispatchOpen(cn)

	for {
		data, err := sock.ReadMessage()
		if err != nil {
			cn.fail("read", err)
			return
		}
		util.Stats.AddReceived()
		cn.client.dispatchFrame(cn, data)
	}
}

// fail closes the connection after a transport failure and reports it,
// unless the connection had already been closed on purpose.
func (cn *connection) fail(op string, err error) {
	cn.mu.Lock()
	deliberate := cn.state == StateClosed || cn.ctx.Err() != nil
	cn.state = StateClosed
	sock := cn.socket
	cn.mu.Unlock()

	if sock != nil {
		_ = sock.Close()
	}

	if deliberate {
		util.LogDebug("connection to %s closed", cn.client.url)
		return
	}

	terr := &TransportError{Op: op, Err: err}
	util.LogError("websocket error: %v", terr)
	cn.client.dispatchError(cn, terr)
}

// write sends one frame, serialized against other writers.
func (cn *connection) write(data []byte) error {
	cn.mu.Lock()
	sock, state := cn.socket, cn.state
	cn.mu.Unlock()

	if state != StateOpen {
		return ErrNotOpen
	}

	cn.writeMu.Lock()
	defer cn.writeMu.Unlock()

	if err := sock.WriteMessage(data); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	util.Stats.AddSent()
	return nil
}
