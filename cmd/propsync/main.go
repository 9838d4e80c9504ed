// Propsync: CLI entry point.
//
// This tool keeps named properties in sync between a controller display and
// an interactive device over a WebSocket signaling channel, and can host
// that channel itself.
//
// It can be launched interactively (no flags) or non-interactively via CLI
// flags (-role, -host, -listen, -stream, -offer).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/1ureka/propsync/internal/app"
	"github.com/1ureka/propsync/internal/config"
	"github.com/1ureka/propsync/internal/util"
)

var version = "dev"

func main() {
	// Root context, cancelled on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// CLI flags.
	role := flag.String("role", "", "Role: controller, device or serve")
	host := flag.String("host", "", "Host or URL of the signaling endpoint (controller, device)")
	listen := flag.String("listen", "127.0.0.1:8080", "Address to listen on (serve only)")
	stream := flag.Bool("stream", false, "Request streaming once connected (controller only)")
	offer := flag.String("offer", "", "File holding a remote SDP offer to answer (controller only)")
	logLevel := flag.String("log", "", "Log level: debug, info, warn or error")
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := &config.Config{
		Role:       config.Role(*role),
		Host:       *host,
		ListenAddr: *listen,
		Stream:     *stream,
		OfferPath:  *offer,
		Debug:      *debugMode,
	}

	if *logLevel != "" && !util.SetLevel(*logLevel) {
		util.LogError("invalid -log level: %q", *logLevel)
		os.Exit(1)
	}
	if cfg.Debug {
		util.EnableDebug()
	}

	pterm.Info.Println(fmt.Sprintf("Propsync — v%s", version))
	pterm.Println()

	if cfg.Role == "" {
		// No -role flag → interactive mode.
		askConfig(cfg)
	}

	if err := cfg.Validate(); err != nil {
		util.LogError("%v", err)
		os.Exit(1)
	}

	util.StartStatsReporter(ctx, 5*time.Second)

	if err := run(ctx, cfg); err != nil {
		util.LogError("%s stopped: %v", cfg.Role, err)
		os.Exit(1)
	}

	util.LogInfo("successfully closed %s", cfg.Role)
}

func run(ctx context.Context, cfg *config.Config) error {
	switch cfg.Role {
	case config.RoleController:
		return app.RunController(ctx, cfg, os.Stdin)
	case config.RoleDevice:
		return app.RunDevice(ctx, cfg, os.Stdin)
	default:
		return app.RunServe(ctx, cfg)
	}
}

// ---------------------------------------------------------------------------
// Interactive prompts
// ---------------------------------------------------------------------------

// askConfig fills cfg through interactive prompts.
func askConfig(cfg *config.Config) {
	options := []string{
		"Controller — Display properties and toggle streaming",
		"Device     — Edit and publish properties",
		"Serve      — Host the signaling endpoint",
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText("Select your role").
		Show()

	pterm.Println()

	for _, r := range config.Roles {
		if strings.HasPrefix(strings.ToLower(choice), string(r)) {
			cfg.Role = r
		}
	}

	if cfg.Role == config.RoleServe {
		cfg.ListenAddr = askText("Listen address", cfg.ListenAddr)
		return
	}

	cfg.Host = askHost()
	if cfg.Role == config.RoleController {
		cfg.Stream, _ = pterm.DefaultInteractiveConfirm.
			WithDefaultText("Request streaming once connected?").
			Show()
		pterm.Println()
	}
}

// askHost prompts the user for a host until a usable one is entered.
func askHost() string {
	for {
		raw := askText("Signaling host (e.g. 192.168.1.20:8080 or wss://cam.example.com)", "")

		probe := config.Config{Role: config.RoleDevice, Host: raw}
		if err := probe.Validate(); err == nil {
			return raw
		}

		util.LogWarning("invalid input: please enter a valid host or URL")
		pterm.Println()
	}
}

// askText prompts for one line of text, falling back to def when empty.
func askText(prompt, def string) string {
	raw, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		Show()
	pterm.Println()

	if raw = strings.TrimSpace(raw); raw == "" {
		return def
	}
	return raw
}
