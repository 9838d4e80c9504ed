package rtc

import (
	"errors"
	"testing"
	"time"

	"github.com/pion/logging"
	"github.com/pion/webrtc/v4"

	"github.com/1ureka/propsync/internal/signaling"
)

var (
	_ Signaler = (*fakeSignaler)(nil)
	_ Signaler = (*signaling.Client)(nil)
)

type fakeSignaler struct {
	answers    chan string
	candidates chan webrtc.ICECandidateInit
	err        error
}

func newFakeSignaler() *fakeSignaler {
	return &fakeSignaler{
		answers:    make(chan string, 4),
		candidates: make(chan webrtc.ICECandidateInit, 64),
	}
}

func (f *fakeSignaler) SendAnswer(sdp string) error {
	if f.err != nil {
		return f.err
	}
	f.answers <- sdp
	return nil
}

func (f *fakeSignaler) SendCandidate(c webrtc.ICECandidateInit) error {
	select {
	case f.candidates <- c:
	default:
	}
	return nil
}

func testConfig() Config {
	lf := logging.NewDefaultLoggerFactory()
	lf.DefaultLogLevel = logging.LogLevelError
	return Config{LoggerFactory: lf}
}

// newOfferer returns a local PeerConnection with a data channel and its offer.
func newOfferer(t *testing.T) (*webrtc.PeerConnection, webrtc.SessionDescription) {
	t.Helper()

	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("NewPeerConnection: %v", err)
	}
	t.Cleanup(func() { _ = pc.Close() })

	if _, err := pc.CreateDataChannel("props", nil); err != nil {
		t.Fatalf("CreateDataChannel: %v", err)
	}

	offer, err := pc.CreateOffer(nil)
	if err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}
	if err := pc.SetLocalDescription(offer); err != nil {
		t.Fatalf("SetLocalDescription: %v", err)
	}
	return pc, offer
}

func TestAcceptSendsAnswer(t *testing.T) {
	offerer, offer := newOfferer(t)
	sig := newFakeSignaler()

	a, err := NewAnswerer(sig, testConfig())
	if err != nil {
		t.Fatalf("NewAnswerer: %v", err)
	}
	defer a.Close()

	if err := a.Accept(offer.SDP); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	var sdp string
	select {
	case sdp = <-sig.answers:
	case <-time.After(2 * time.Second):
		t.Fatal("no answer sent")
	}
	if sdp == "" {
		t.Fatal("empty answer sdp")
	}

	answer := webrtc.SessionDescription{Type: webrtc.SDPTypeAnswer, SDP: sdp}
	if err := offerer.SetRemoteDescription(answer); err != nil {
		t.Fatalf("offerer rejected answer: %v", err)
	}

	select {
	case extra := <-sig.answers:
		t.Fatalf("more than one answer sent: %q", extra)
	default:
	}
}

func TestAcceptRejectsEmptyOffer(t *testing.T) {
	a, err := NewAnswerer(newFakeSignaler(), testConfig())
	if err != nil {
		t.Fatalf("NewAnswerer: %v", err)
	}
	defer a.Close()

	if err := a.Accept(""); !errors.Is(err, ErrEmptyOffer) {
		t.Fatalf("expected ErrEmptyOffer, got %v", err)
	}
}

func TestAcceptReportsSignalerError(t *testing.T) {
	_, offer := newOfferer(t)
	sig := newFakeSignaler()
	sig.err = errors.New("connection is not open")

	a, err := NewAnswerer(sig, testConfig())
	if err != nil {
		t.Fatalf("NewAnswerer: %v", err)
	}
	defer a.Close()

	if err := a.Accept(offer.SDP); !errors.Is(err, sig.err) {
		t.Fatalf("expected signaler error, got %v", err)
	}
}

func TestAcceptAfterClose(t *testing.T) {
	_, offer := newOfferer(t)

	a, err := NewAnswerer(newFakeSignaler(), testConfig())
	if err != nil {
		t.Fatalf("NewAnswerer: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if err := a.Accept(offer.SDP); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := a.AddCandidate(webrtc.ICECandidateInit{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestAcceptRejectsGarbage(t *testing.T) {
	a, err := NewAnswerer(newFakeSignaler(), testConfig())
	if err != nil {
		t.Fatalf("NewAnswerer: %v", err)
	}
	defer a.Close()

	if err := a.Accept("not an sdp"); err == nil {
		t.Fatal("expected error for invalid offer")
	}
}
