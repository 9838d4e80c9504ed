package util

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// ──────────────────────────────────────────────────────────────────────────────
// Global stats singleton
// ──────────────────────────────────────────────────────────────────────────────

// Stats is the process-wide signaling message counter.
var Stats = &stats{}

type stats struct {
	Sent      atomic.Int64 // frames written to a socket
	Received  atomic.Int64 // frames read from a socket
	Malformed atomic.Int64 // frames that failed to decode
	Dropped   atomic.Int64 // decodable frames nobody handled
}

func (s *stats) AddSent()      { s.Sent.Add(1) }
func (s *stats) AddReceived()  { s.Received.Add(1) }
func (s *stats) AddMalformed() { s.Malformed.Add(1) }
func (s *stats) AddDropped()   { s.Dropped.Add(1) }

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Sent, Received, Malformed, Dropped int64
}

// Snapshot reads all counters.
func (s *stats) Snapshot() Snapshot {
	return Snapshot{
		Sent:      s.Sent.Load(),
		Received:  s.Received.Load(),
		Malformed: s.Malformed.Load(),
		Dropped:   s.Dropped.Load(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Periodic reporter
// ──────────────────────────────────────────────────────────────────────────────

// StartStatsReporter launches a goroutine that logs message counters every
// interval, skipping quiet periods. It stops when ctx is cancelled.
func StartStatsReporter(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var prev Snapshot
		for {
			select {
			case <-ticker.C:
				cur := Stats.Snapshot()
				if cur != prev {
					pterm.DefaultLogger.Info(formatStats(prev, cur))
				}
				prev = cur

			case <-ctx.Done():
				return
			}
		}
	}()
}

// formatStats renders the delta between two snapshots for the logger.
func formatStats(prev, cur Snapshot) string {
	return fmt.Sprintf("Out: %4d msg | In: %4d msg | Malformed: %3d | Dropped: %3d",
		cur.Sent-prev.Sent,
		cur.Received-prev.Received,
		cur.Malformed-prev.Malformed,
		cur.Dropped-prev.Dropped,
	)
}
