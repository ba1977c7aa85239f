package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// heartbeatLoop replaces the original's blocking-sleep heartbeat thread
// with a time.Ticker driven by context.Context, so the loop exits
// cleanly the moment the session closes instead of needing a forced
// wakeup. The first heartbeat is jittered, per the Gateway's documented
// "heartbeat_interval * random_between(0, 1)" initial delay.
func (s *Session) heartbeatLoop(ctx context.Context) error {
	interval := s.state.getHeartbeatInterval()
	if interval == 0 {
		return fmt.Errorf("gateway: heartbeat loop started before HELLO")
	}

	jitter := time.Duration(float64(interval) * rand.Float64() * float64(time.Millisecond))
	select {
	case <-time.After(jitter):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := s.sendHeartbeat(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.state.isHeartbeatAckPending() {
				return ErrLivenessFailure
			}
			if err := s.sendHeartbeat(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Session) sendHeartbeat(ctx context.Context) error {
	seq := s.state.getSequence()
	return s.enqueue(heartbeatFrame(seq))
}
