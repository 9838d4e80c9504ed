package app

import (
	"context"
	"errors"
	"io"

	"github.com/1ureka/propsync/internal/binding"
	"github.com/1ureka/propsync/internal/config"
	"github.com/1ureka/propsync/internal/signaling"
	"github.com/1ureka/propsync/internal/ui"
	"github.com/1ureka/propsync/internal/util"
)

// RunDevice connects as the interactive role. Inbound properties update the
// device panel, and lines read from in publish properties or stream
// requests. It returns when ctx is cancelled or the connection fails.
func RunDevice(ctx context.Context, cfg *config.Config, in io.Reader) error {
	url, err := cfg.URL()
	if err != nil {
		return err
	}

	panel := devicePanel()
	client := signaling.NewClient(url, nil)
	dev := binding.NewDevice(panel)
	dev.Bind(loggingClient{client})

	for _, row := range panel.Rows() {
		panel.OnChange(row[0], func(el ui.Element) {
			util.LogDebug("%s changed", el.ID())
		})
	}

	errCh := make(chan error, 1)
	client.OnOpen(func() { util.LogSuccess("connected to %s", url) })
	client.OnError(func(err error) {
		select {
		case errCh <- err:
		default:
		}
	})

	client.Connect(ctx)
	defer client.Close()

	util.LogInfo("type \"help\" for commands")

	lines := readLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			runDeviceCommand(dev, panel, line)
		}
	}
}

func runDeviceCommand(dev *binding.Device, panel *ui.Panel, line string) {
	cmd, err := parseCommand(line)
	if err != nil {
		util.LogWarning("%v", err)
		return
	}

	switch cmd.kind {
	case cmdProperty:
		err = dev.Property(cmd.name, cmd.value)
	case cmdStream:
		err = dev.Stream(cmd.state)
	case cmdToggle:
		el, _ := panel.ElementByID(PropStreaming)
		box, _ := el.(ui.Checkable)
		err = dev.Stream(box == nil || !box.Checked())
	case cmdShow:
		renderPanel(panel)
	case cmdHelp:
		util.LogInfo(usage)
	}

	if errors.Is(err, signaling.ErrNotOpen) {
		util.LogWarning("not connected yet, command discarded")
	} else if err != nil {
		util.LogWarning("command failed: %v", err)
	}
}
