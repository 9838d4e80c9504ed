package app

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/server"
	"github.com/1ureka/propsync/internal/signaling"
)

var _ propertySink = (*fakeSink)(nil)

type fakeSink struct {
	mu   sync.Mutex
	sent []*protocol.Message
}

func (f *fakeSink) SendProperty(name string, value protocol.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, protocol.Property(name, value))
	return nil
}

func (f *fakeSink) snapshot() []*protocol.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*protocol.Message(nil), f.sent...)
}

func (f *fakeSink) count(name string) int {
	n := 0
	for _, m := range f.snapshot() {
		if m.Name == name {
			n++
		}
	}
	return n
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamerPublishesStatsWhileOn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &fakeSink{}
	st := newStreamer(ctx, sink, 10*time.Millisecond)

	st.set(true)
	if !st.streaming() {
		t.Fatal("streamer should be on")
	}
	waitUntil(t, func() bool { return sink.count(PropStatsSent) >= 2 })

	st.set(false)
	if st.streaming() {
		t.Fatal("streamer should be off")
	}

	time.Sleep(30 * time.Millisecond)
	before := sink.count(PropStatsSent)
	time.Sleep(50 * time.Millisecond)
	if after := sink.count(PropStatsSent); after != before {
		t.Errorf("stats still published after stop: %d -> %d", before, after)
	}

	var states []protocol.Value
	for _, m := range sink.snapshot() {
		if m.Name == PropStreaming {
			states = append(states, m.Value)
		}
	}
	if len(states) != 2 || states[0] != protocol.Bool(true) || states[1] != protocol.Bool(false) {
		t.Errorf("unexpected streaming states: %v", states)
	}
}

func TestStreamerRepeatedOnKeepsOnePublisher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &fakeSink{}
	st := newStreamer(ctx, sink, time.Hour)

	st.set(true)
	st.set(true)
	if !st.streaming() {
		t.Fatal("publisher lost")
	}
	st.set(false)
	st.set(false)

	if n := sink.count(PropStreaming); n != 4 {
		t.Errorf("expected every request to be announced, got %d", n)
	}
}

func TestStreamRequestTogglesStreamingProperty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.New()
	st := newStreamer(ctx, srv, time.Hour)
	srv.Handle(protocol.KindStream, st.handle)

	hs := httptest.NewServer(srv.Handler())
	defer hs.Close()
	defer srv.Close()

	url, err := signaling.EndpointURL(hs.URL)
	if err != nil {
		t.Fatalf("EndpointURL: %v", err)
	}

	client := signaling.NewClient(url, nil)
	defer client.Close()

	props := make(chan *protocol.Message, 8)
	opened := make(chan struct{}, 1)
	client.OnProperty(func(m *protocol.Message) { props <- m })
	client.OnOpen(func() { opened <- struct{}{} })
	client.Connect(ctx)

	select {
	case <-opened:
	case <-time.After(2 * time.Second):
		t.Fatal("connection did not open")
	}

	if err := client.SendStream(true); err != nil {
		t.Fatalf("SendStream: %v", err)
	}

	select {
	case m := <-props:
		if m.Name != PropStreaming || m.Value != protocol.Bool(true) {
			t.Fatalf("unexpected property: %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("streaming property not received")
	}

	if !st.streaming() {
		t.Error("streamer not running")
	}
	if srv.Properties()[PropStreaming] != protocol.Bool(true) {
		t.Error("snapshot not updated")
	}
}
