// Package app contains the top-level orchestration for the controller,
// device and serve roles.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/1ureka/propsync/internal/config"
	"github.com/1ureka/propsync/internal/protocol"
	"github.com/1ureka/propsync/internal/server"
	"github.com/1ureka/propsync/internal/signaling"
	"github.com/1ureka/propsync/internal/util"
)

// statsInterval is how often counters are published while streaming.
const statsInterval = 5 * time.Second

// RunServe hosts the signaling endpoint until ctx is cancelled. Stream
// requests switch the "streaming" property, and while streaming is on the
// message counters are published as properties.
func RunServe(ctx context.Context, cfg *config.Config) error {
	srv := server.New()
	st := newStreamer(ctx, srv, statsInterval)

	srv.Handle(protocol.KindStream, st.handle)
	srv.Handle(protocol.KindAnswer, func(connID string, msg *protocol.Message) {
		util.LogInfo("[%s] answer received (%d bytes of sdp)", shortID(connID), len(msg.SDP))
	})
	srv.Handle(protocol.KindCandidate, func(connID string, msg *protocol.Message) {
		util.LogDebug("[%s] candidate: %s", shortID(connID), msg.Candidate.Candidate)
	})

	if err := srv.SendProperty(PropStreaming, protocol.Bool(false)); err != nil {
		return err
	}

	addr, err := srv.Start(cfg.ListenAddr)
	if err != nil {
		return err
	}
	defer srv.Close()

	util.LogSuccess("signaling endpoint listening on ws://%s%s", addr, signaling.EndpointPath)

	<-ctx.Done()
	st.set(false)
	return nil
}

// propertySink publishes property values.
type propertySink interface {
	SendProperty(name string, value protocol.Value) error
}

// streamer tracks the streaming state and runs the counter publisher while
// it is on.
type streamer struct {
	ctx      context.Context
	sink     propertySink
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newStreamer(ctx context.Context, sink propertySink, interval time.Duration) *streamer {
	return &streamer{ctx: ctx, sink: sink, interval: interval}
}

func (s *streamer) handle(connID string, msg *protocol.Message) {
	util.LogInfo("[%s] stream %s requested", shortID(connID), onOff(msg.State))
	s.set(msg.State)
}

// set switches streaming and announces the new state.
func (s *streamer) set(on bool) {
	s.mu.Lock()
	switch {
	case on && s.cancel == nil:
		ctx, cancel := context.WithCancel(s.ctx)
		s.cancel = cancel
		go s.publishStats(ctx)
	case !on && s.cancel != nil:
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	if err := s.sink.SendProperty(PropStreaming, protocol.Bool(on)); err != nil {
		util.LogWarning("failed to publish %s: %v", PropStreaming, err)
	}
}

func (s *streamer) streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *streamer) publishStats(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap := util.Stats.Snapshot()
			for name, n := range map[string]int64{
				PropStatsSent:     snap.Sent,
				PropStatsReceived: snap.Received,
				PropStatsDropped:  snap.Dropped,
			} {
				if err := s.sink.SendProperty(name, protocol.Number(n)); err != nil {
					util.LogWarning("failed to publish %s: %v", name, err)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

func onOff(state bool) string {
	if state {
		return "on"
	}
	return "off"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
