package binding

import (
	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/ui"
	"github.com/1ureka/propsync/internal/util"
)

// Device is the interactive binding: inbound properties update controls and
// raise a change notification, and local changes are published with
// Property and Stream.
type Device struct {
	doc    ui.Document
	client Client
}

var _ Binding = (*Device)(nil)

// NewDevice creates a device binding over doc.
func NewDevice(doc ui.Document) *Device {
	return &Device{doc: doc}
}

// Bind installs the property handler and remembers c for Property/Stream.
func (b *Device) Bind(c Client) {
	b.client = c
	c.OnProperty(b.apply)
}

// Property forwards a property value to the peer.
func (b *Device) Property(name string, value protocol.Value) error {
	if b.client == nil {
		return errUnbound
	}
	return b.client.SendProperty(name, value)
}

// Stream forwards a stream toggle to the peer.
func (b *Device) Stream(state bool) error {
	if b.client == nil {
		return errUnbound
	}
	return b.client.SendStream(state)
}

func (b *Device) apply(msg *protocol.Message) {
	el, ok := b.doc.ElementByID(msg.Name)
	if !ok {
		util.LogDebug("no element for property %q", msg.Name)
		return
	}

	switch e := el.(type) {
	case ui.Checkable:
		e.SetChecked(protocol.Truthy(msg.Value))
	case ui.Writable:
		e.SetText(text(msg.Value))
	default:
		util.LogDebug("element %q cannot hold a value", msg.Name)
		return
	}

	b.doc.DispatchChange(el)
}
