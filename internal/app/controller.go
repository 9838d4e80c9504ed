package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pion/logging"

	"github.com/1ureka/propsync/internal/binding"
	"github.com/1ureka/propsync/internal/config"
	"github.com/1ureka/propsync/internal/rtc"
	"github.com/1ureka/propsync/internal/signaling"
	"github.com/1ureka/propsync/internal/ui"
	"github.com/1ureka/propsync/internal/util"
)

// RunController connects as the display role. Inbound properties are shown
// on the controller panel; the stream toggle is driven by cfg.Stream and by
// terminal commands. When cfg.OfferPath is set, the offer it holds is
// answered once the connection opens.
func RunController(ctx context.Context, cfg *config.Config, in io.Reader) error {
	url, err := cfg.URL()
	if err != nil {
		return err
	}

	var offer []byte
	if cfg.OfferPath != "" {
		if offer, err = os.ReadFile(cfg.OfferPath); err != nil {
			return fmt.Errorf("failed to read offer: %w", err)
		}
	}

	panel := controllerPanel()
	client := signaling.NewClient(url, nil)
	binding.NewController(panel, "").Bind(loggingClient{client})

	var answerer *rtc.Answerer
	if len(offer) > 0 {
		rtcCfg := rtc.DefaultConfig()
		rtcCfg.LoggerFactory = pionLoggerFactory(cfg.Debug)
		if answerer, err = rtc.NewAnswerer(client, rtcCfg); err != nil {
			return err
		}
		defer answerer.Close()
	}

	errCh := make(chan error, 1)
	client.OnOpen(func() {
		util.LogSuccess("connected to %s", url)

		if cfg.Stream {
			setToggle(panel, true)
		}
		if answerer != nil {
			if err := answerer.Accept(string(offer)); err != nil {
				util.LogError("failed to answer offer: %v", err)
			}
		}
	})
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
			runControllerCommand(panel, line)
		}
	}
}

func runControllerCommand(panel *ui.Panel, line string) {
	cmd, err := parseCommand(line)
	if err != nil {
		util.LogWarning("%v", err)
		return
	}

	switch cmd.kind {
	case cmdStream:
		setToggle(panel, cmd.state)
	case cmdToggle:
		if err := panel.Toggle(binding.StreamToggleID); err != nil {
			util.LogWarning("%v", err)
		}
	case cmdShow:
		renderPanel(panel)
	case cmdHelp:
		util.LogInfo(usage)
	case cmdProperty:
		util.LogWarning("the controller does not publish properties")
	}
}

// setToggle clicks the stream toggle if it is not already in state.
func setToggle(panel *ui.Panel, state bool) {
	el, ok := panel.ElementByID(binding.StreamToggleID)
	if !ok {
		return
	}
	if box, ok := el.(ui.Checkable); ok && box.Checked() == state {
		return
	}
	if err := panel.Toggle(binding.StreamToggleID); err != nil {
		util.LogWarning("%v", err)
	}
}

// pionLoggerFactory quiets pion internals unless debug logging is on.
func pionLoggerFactory(debug bool) logging.LoggerFactory {
	lf := logging.NewDefaultLoggerFactory()
	lf.DefaultLogLevel = logging.LogLevelWarn
	if debug {
		lf.DefaultLogLevel = logging.LogLevelDebug
	}
	return lf
}
