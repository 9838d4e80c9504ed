package binding

import (
	"testing"

	"github.com/1ureka/propsync/internal/signaling"
	"github.com/1ureka/propsync/internal/ui"
)

// TestDeviceWithSignalingClient runs inbound frames through a real client.
func TestDeviceWithSignalingClient(t *testing.T) {
	box := ui.NewCheckbox("adaptive-streaming")
	input := ui.NewInput("brightness")
	panel := ui.NewPanel(box, input)

	c := signaling.NewClient("ws://device.local/ws", nil)
	NewDevice(panel).Bind(c)

	changes := map[string]int{}
	for _, id := range []string{"adaptive-streaming", "brightness"} {
		panel.OnChange(id, func(el ui.Element) { changes[el.ID()]++ })
	}

	c.HandleMessage([]byte(`{"msg":"property","name":"brightness","value":42}`))
	c.HandleMessage([]byte(`{"msg":"property","name":"adaptive-streaming","value":true}`))
	c.HandleMessage([]byte(`{"msg":"stream","state":true}`))
	c.HandleMessage([]byte(`garbage`))

	if input.Text() != "42" {
		t.Errorf("brightness: got %q", input.Text())
	}
	if !box.Checked() {
		t.Error("adaptive-streaming not checked")
	}
	if changes["brightness"] != 1 || changes["adaptive-streaming"] != 1 {
		t.Errorf("unexpected notifications: %v", changes)
	}
}
