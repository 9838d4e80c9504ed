package binding

import (
	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/ui"
	"github.com/1ureka/propsync/internal/util"
)

// Controller is the display-side binding: the stream toggle drives
// SendStream, and inbound properties are written as text into the element
// with the same id.
type Controller struct {
	doc      ui.Document
	toggleID string
}

var _ Binding = (*Controller)(nil)

// NewController creates a controller binding over doc. An empty toggleID
// selects StreamToggleID.
func NewController(doc ui.Document, toggleID string) *Controller {
	if toggleID == "" {
		toggleID = StreamToggleID
	}
	return &Controller{doc: doc, toggleID: toggleID}
}

// Bind wires the stream toggle and the property handler.
func (b *Controller) Bind(c Client) {
	b.doc.OnChange(b.toggleID, func(el ui.Element) {
		box, ok := el.(ui.Checkable)
		if !ok {
			return
		}
		if err := c.SendStream(box.Checked()); err != nil {
			util.LogWarning("failed to send stream toggle: %v", err)
		}
	})

	c.OnProperty(b.apply)
}

func (b *Controller) apply(msg *protocol.Message) {
	el, ok := b.doc.ElementByID(msg.Name)
	if !ok {
		util.LogDebug("no element for property %q", msg.Name)
		return
	}

	w, ok := el.(ui.Writable)
	if !ok {
		util.LogDebug("element %q is not a text element", msg.Name)
		return
	}
	w.SetText(text(msg.Value))
}

// text renders a possibly missing value.
func text(v protocol.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
