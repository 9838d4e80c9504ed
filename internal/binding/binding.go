// Package binding connects a ui.Document to a signaling client. The two
// roles share the client and differ only in which messages they send and how
// inbound properties are applied to elements.
package binding

import (
	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/signaling"
)

// Client is the part of *signaling.Client a binding uses.
type Client interface {
	OnProperty(fn func(*protocol.Message))
	SendStream(enabled bool) error
	SendProperty(name string, value protocol.Value) error
}

var _ Client = (*signaling.Client)(nil)

// Binding installs role-specific behaviour on a client.
type Binding interface {
	Bind(c Client)
}

// StreamToggleID is the id of the checkbox that switches streaming.
const StreamToggleID = "stream_toggle"
