package signaling

import (
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/1ureka/propsync/internal/protocol"
)

// Send encodes msg and writes it to the open connection. It fails with
// ErrNotOpen when there is no open connection; nothing is buffered.
func (c *Client) Send(msg *protocol.Message) error {
	if !msg.Kind.Valid() {
		return fmt.Errorf("%w: %q", protocol.ErrUnknownKind, msg.Kind)
	}

	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotOpen
	}
	return conn.write(data)
}

// SendStream asks the peer to start or stop streaming.
func (c *Client) SendStream(enabled bool) error {
	return c.Send(protocol.Stream(enabled))
}

// SendAnswer sends the local SDP answer.
func (c *Client) SendAnswer(sdp string) error {
	if sdp == "" {
		return ErrEmptySDP
	}
	return c.Send(protocol.Answer(sdp))
}

// SendCandidate trickles a local ICE candidate to the peer.
func (c *Client) SendCandidate(candidate webrtc.ICECandidateInit) error {
	return c.Send(protocol.Candidate(candidate))
}

// SendProperty publishes a property value to the peer.
func (c *Client) SendProperty(name string, value protocol.Value) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProperty)
	}
	if value == nil {
		return fmt.Errorf("%w: %q has no value", ErrInvalidProperty, name)
	}
	return c.Send(protocol.Property(name, value))
}
