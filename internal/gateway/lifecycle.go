package gateway

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// identifyOrResume is called once HELLO has set the heartbeat interval.
// It chooses RESUME over a fresh IDENTIFY whenever the session state
// still holds a session ID and hasn't exhausted its resume attempts,
// mirroring gw_hello's branch on whether a prior session_id is on file.
func (s *Session) identifyOrResume(ctx context.Context) error {
	if s.state.canResume() {
		sessionID, _, seq := s.state.resumeTarget()
		s.state.setPhase(PhaseResuming)
		s.state.recordResumeAttempt()
		s.logger.Info("gateway: resuming session", "session_id", sessionID, "seq", seq)
		return s.enqueue(resumeFrame(s.cfg.Token, sessionID, seq))
	}

	s.state.setPhase(PhaseIdentifying)
	s.logger.Info("gateway: identifying")
	return s.enqueue(identifyFrame(s.cfg.Token, s.cfg.Intents, s.cfg.Shard))
}

// backoff implements the exponential-backoff-with-jitter reconnect delay:
// base 1s, doubling each attempt, capped at 60s, with up to 20% jitter so
// a fleet of shards reconnecting together doesn't thunder-herd the
// Gateway. This applies to transport/liveness failures, not to
// INVALID_SESSION; see invalidSessionDelay.
func backoff(attempt int) time.Duration {
	base := time.Second
	max := 60 * time.Second

	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > max || d <= 0 {
		d = max
	}
	jitter := time.Duration(rand.Float64() * 0.2 * float64(d))
	return d + jitter
}

// invalidSessionDelay is the uniformly distributed 1-5s wait the Gateway
// documentation requires before re-identifying after a non-fatal
// INVALID_SESSION. It is a fixed distribution, not an escalating one: a
// run of INVALID_SESSIONs within the same Open call must not ratchet up
// through the exponential backoff schedule.
func invalidSessionDelay() time.Duration {
	return time.Duration(1000+rand.Intn(4000)) * time.Millisecond
}
