// Package rtc produces the controller's side of a WebRTC negotiation: an SDP
// answer for a remote offer plus trickled local ICE candidates, both handed
// to a Signaler for delivery.
package rtc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"
	"github.com/pion/webrtc/v4"
)

// DefaultSTUNServers are used for candidate gathering. No TURN is
// configured.
var DefaultSTUNServers = []string{
	"stun:stun.l.google.com:19302",
	"stun:stun1.l.google.com:19302",
}

var (
	ErrEmptyOffer = errors.New("offer sdp is empty")
	ErrClosed     = errors.New("answerer is closed")
)

// Signaler delivers negotiation messages to the remote peer.
// *signaling.Client satisfies it.
type Signaler interface {
	SendAnswer(sdp string) error
	SendCandidate(candidate webrtc.ICECandidateInit) error
}

// Config configures an Answerer.
type Config struct {
	// ICEServers lists STUN URLs. Empty means host candidates only.
	ICEServers []string

	// LoggerFactory for the answerer and pion internals. If nil, uses
	// logging.NewDefaultLoggerFactory().
	LoggerFactory logging.LoggerFactory
}

// DefaultConfig returns a Config using DefaultSTUNServers.
func DefaultConfig() Config {
	return Config{ICEServers: DefaultSTUNServers}
}

// Answerer wraps one PeerConnection on the answering side.
type Answerer struct {
	pc  *webrtc.PeerConnection
	sig Signaler
	log logging.LeveledLogger

	mu     sync.Mutex
	closed bool
	state  webrtc.PeerConnectionState
}

// NewAnswerer creates an Answerer whose local candidates are sent through
// sig as they are gathered.
func NewAnswerer(sig Signaler, config Config) (*Answerer, error) {
	factory := config.LoggerFactory
	if factory == nil {
		factory = logging.NewDefaultLoggerFactory()
	}

	se := webrtc.SettingEngine{LoggerFactory: factory}
	api := webrtc.NewAPI(webrtc.WithSettingEngine(se))

	pcConfig := webrtc.Configuration{}
	if len(config.ICEServers) > 0 {
		pcConfig.ICEServers = []webrtc.ICEServer{{URLs: config.ICEServers}}
	}

	pc, err := api.NewPeerConnection(pcConfig)
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	a := &Answerer{
		pc:    pc,
		sig:   sig,
		log:   factory.NewLogger("answerer"),
		state: webrtc.PeerConnectionStateNew,
	}

	pc.OnICECandidate(a.onCandidate)
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		a.log.Infof("peer connection state: %s", state)
		a.mu.Lock()
		a.state = state
		a.mu.Unlock()
	})
	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		a.log.Debugf("remote data channel %q", dc.Label())
	})

	return a, nil
}

// Accept applies the remote offer, creates the answer and sends it. Local
// candidates follow through SendCandidate as they are gathered.
func (a *Answerer) Accept(offerSDP string) error {
	if offerSDP == "" {
		return ErrEmptyOffer
	}
	if a.isClosed() {
		return ErrClosed
	}

	offer := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: offerSDP}
	if err := a.pc.SetRemoteDescription(offer); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}

	answer, err := a.pc.CreateAnswer(nil)
	if err != nil {
		return fmt.Errorf("create answer: %w", err)
	}
	if err := a.pc.SetLocalDescription(answer); err != nil {
		return fmt.Errorf("set local description: %w", err)
	}

	if err := a.sig.SendAnswer(answer.SDP); err != nil {
		return fmt.Errorf("send answer: %w", err)
	}
	a.log.Debug("answer sent")
	return nil
}

// AddCandidate adds a remote ICE candidate.
func (a *Answerer) AddCandidate(candidate webrtc.ICECandidateInit) error {
	if a.isClosed() {
		return ErrClosed
	}
	return a.pc.AddICECandidate(candidate)
}

// ConnectionState returns the last observed PeerConnection state.
func (a *Answerer) ConnectionState() webrtc.PeerConnectionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Close releases the PeerConnection. Further calls are no-ops.
func (a *Answerer) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	return a.pc.Close()
}

func (a *Answerer) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// onCandidate forwards a gathered candidate. A nil candidate ends gathering.
func (a *Answerer) onCandidate(c *webrtc.ICECandidate) {
	if c == nil {
		a.log.Debug("candidate gathering complete")
		return
	}
	if err := a.sig.SendCandidate(c.ToJSON()); err != nil {
		a.log.Warnf("failed to send candidate: %v", err)
	}
}
