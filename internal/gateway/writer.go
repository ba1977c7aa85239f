package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hendrywilliam/siren/internal/transport"
)

// writeLoop is the sole goroutine allowed to call conn.Write: every
// outbound frame, whether a caller's Send or an internal heartbeat/
// identify/resume, goes through the outbound queue so there is never
// more than one write in flight and frames leave in the order they were
// enqueued. This replaces the mutex+condvar write queue the original
// used with a single-consumer channel drain.
func (s *Session) writeLoop(ctx context.Context, conn transport.Conn) error {
	for {
		frame, err := s.outbound.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		env, ok := frame.(outboundEnvelope)
		if !ok {
			return fmt.Errorf("gateway: unexpected outbound frame type %T", frame)
		}

		b, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("gateway: encode outbound frame: %w", err)
		}

		if err := conn.Write(ctx, b); err != nil {
			return fmt.Errorf("%w: %w", ErrTransportFailure, err)
		}

		if env.Op == OpcodeHeartbeat {
			s.state.markHeartbeatSent()
		}
	}
}

// enqueue pushes a frame onto the outbound queue, translating a closed
// queue into ErrClosed for callers.
func (s *Session) enqueue(env outboundEnvelope) error {
	if err := s.outbound.Push(env); err != nil {
		return ErrClosed
	}
	return nil
}
