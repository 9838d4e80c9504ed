package signaling

import (
	"errors"

	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/util"
)

// HandleMessage decodes one raw frame and routes it as if it had arrived on
// the connection. Malformed frames are logged and dropped; property messages
// go to the OnProperty handler; every other kind is ignored.
func (c *Client) HandleMessage(data []byte) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.route(data)
}

// dispatchFrame routes a frame read from conn, unless conn has been replaced.
func (c *Client) dispatchFrame(conn *connection, data []byte) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	if !c.isCurrent(conn) || conn.getState() != StateOpen {
		util.Stats.AddDropped()
		return
	}
	c.route(data)
}

func (c *Client) dispatchOpen(conn *connection) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	fn := c.onOpen
	live := c.conn == conn
	c.mu.Unlock()

	if live && fn != nil && conn.getState() == StateOpen {
		fn()
	}
}

func (c *Client) dispatchError(conn *connection, err error) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	fn := c.onError
	live := c.conn == conn
	c.mu.Unlock()

	if live && fn != nil {
		fn(err)
	}
}

// route must be called with dispatchMu held.
func (c *Client) route(data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		if errors.Is(err, protocol.ErrMissingKind) {
			util.Stats.AddDropped()
			util.LogDebug("dropping message without kind")
			return
		}
		util.Stats.AddMalformed()
		util.LogWarning("dropping undecodable message: %v", err)
		return
	}

	switch msg.Kind {
	case protocol.KindProperty:
		c.mu.Lock()
		fn := c.onProperty
		c.mu.Unlock()

		if fn == nil {
			util.Stats.AddDropped()
			util.LogDebug("no property handler, dropping %q", msg.Name)
			return
		}
		fn(msg)

	default:
		// stream, answer and candidate only flow from this client to the peer.
		util.Stats.AddDropped()
		util.LogDebug("ignoring inbound %q message", msg.Kind)
	}
}
