package app

import (
	"bufio"
	"context"
	"io"

	"github.com/pterm/pterm"

	"github.com/1ureka/propsync/internal/binding"
	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/ui"
	"github.com/1ureka/propsync/internal/util"
)

// Property names shared by the roles.
const (
	PropStreaming      = "streaming"
	PropBitrate        = "bitrate"
	PropBitrateControl = "bitrate-control"
	PropSRTURI         = "srt-uri"
	PropTCEnabled      = "tc-enabled"

	PropStatsSent     = "stats-sent"
	PropStatsReceived = "stats-received"
	PropStatsDropped  = "stats-dropped"
)

var statsProps = []string{PropStatsSent, PropStatsReceived, PropStatsDropped}

// controllerPanel is the read-only display: a stream toggle and a label per
// property.
func controllerPanel() *ui.Panel {
	p := ui.NewPanel(ui.NewCheckbox(binding.StreamToggleID))
	for _, id := range []string{PropStreaming, PropBitrate, PropBitrateControl, PropSRTURI, PropTCEnabled} {
		p.Add(ui.NewLabel(id))
	}
	for _, id := range statsProps {
		p.Add(ui.NewLabel(id))
	}
	return p
}

// devicePanel holds editable controls for each property.
func devicePanel() *ui.Panel {
	p := ui.NewPanel(
		ui.NewCheckbox(PropStreaming),
		ui.NewInput(PropBitrate),
		ui.NewInput(PropBitrateControl),
		ui.NewInput(PropSRTURI),
		ui.NewCheckbox(PropTCEnabled),
	)
	for _, id := range statsProps {
		p.Add(ui.NewLabel(id))
	}
	return p
}

// renderPanel prints the panel table.
func renderPanel(p *ui.Panel) {
	out, err := p.Render()
	if err != nil {
		util.LogWarning("failed to render panel: %v", err)
		return
	}
	pterm.Println(out)
}

// readLines streams lines from r until EOF or ctx is cancelled.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// loggingClient reports every property the binding applies.
type loggingClient struct {
	binding.Client
}

func (c loggingClient) OnProperty(fn func(*protocol.Message)) {
	c.Client.OnProperty(func(msg *protocol.Message) {
		fn(msg)
		if msg.Value == nil {
			util.LogInfo("%s cleared", msg.Name)
			return
		}
		util.LogInfo("%s = %s", msg.Name, msg.Value)
	})
}
