package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hendrywilliam/siren/internal/transport"
)

// readLoop pulls frames off the transport and hands each one to
// handleFrame. It returns when the context is cancelled or the transport
// reports a terminal error; the caller (Session.Open's errgroup) decides
// whether that means reconnect or give up.
func (s *Session) readLoop(ctx context.Context, conn transport.Conn) error {
	for {
		raw, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if code, ok := transport.CloseCode(err); ok {
				if IsNonReconnectable(code) {
					return fmt.Errorf("%w: close code %d", ErrAuthenticationFailed, code)
				}
				return fmt.Errorf("%w: close code %d", ErrTransportFailure, code)
			}
			return fmt.Errorf("%w: %w", ErrTransportFailure, err)
		}

		var ev RawEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return fmt.Errorf("%w: %w", ErrProtocolViolation, err)
		}

		s.logger.Debug("gateway: received frame", "event", &ev)

		if err := s.handleFrame(ctx, &ev); err != nil {
			return err
		}
	}
}

// handleFrame is the opcode dispatch table. DISPATCH (op 0) is the only
// opcode that carries s and t; every other opcode must not, and a
// DISPATCH missing either is a protocol violation, per the original
// gw_dispatch's "s or t absent" fatal check.
func (s *Session) handleFrame(ctx context.Context, ev *RawEvent) error {
	switch ev.Op {
	case OpcodeDispatch:
		if ev.T == "" || ev.S == nil {
			return fmt.Errorf("%w: dispatch missing s or t", ErrProtocolViolation)
		}
		s.state.setSequence(*ev.S)
		return s.onDispatch(ctx, ev)
	case OpcodeHeartbeat:
		return s.sendHeartbeat(ctx)
	case OpcodeReconnect:
		return fmt.Errorf("%w: server requested reconnect", ErrTransportFailure)
	case OpcodeInvalidSession:
		var resumable bool
		_ = json.Unmarshal(ev.D, &resumable)
		if !resumable {
			s.state.resetForFreshIdentify()
		}
		return fmt.Errorf("%w: resumable=%v", ErrSessionInvalidated, resumable)
	case OpcodeHello:
		return s.onHello(ctx, ev)
	case OpcodeHeartbeatAck:
		s.state.markHeartbeatAcked()
		return nil
	default:
		s.logger.Debug("gateway: unhandled opcode", "op", ev.Op)
		return nil
	}
}

// onDispatch decodes the subset of DISPATCH events the core needs for
// lifecycle, roster and voice bookkeeping (READY, RESUMED, GUILD_CREATE,
// GUILD_DELETE, VOICE_STATE_UPDATE, VOICE_SERVER_UPDATE), then forwards the
// raw event to the consumer unconditionally.
func (s *Session) onDispatch(ctx context.Context, ev *RawEvent) error {
	switch ev.T {
	case "READY":
		var d readyData
		if err := json.Unmarshal(ev.D, &d); err != nil {
			return fmt.Errorf("%w: decode READY: %w", ErrProtocolViolation, err)
		}
		s.onReady(d)
	case "RESUMED":
		// A completed resume resets the consecutive-resume count, so only
		// resumes that fail in a row lead to a fresh IDENTIFY.
		sessionID, resumeURL, _ := s.state.resumeTarget()
		s.state.setReady(sessionID, resumeURL)
		s.logger.Info("gateway: session resumed")
	case "GUILD_CREATE":
		s.onGuildCreate(ev.D)
	case "GUILD_DELETE":
		s.onGuildDelete(ev.D)
	case "VOICE_STATE_UPDATE":
		s.onVoiceStateUpdate(ev.D)
	case "VOICE_SERVER_UPDATE":
		s.onVoiceServerUpdate(ev.D)
	}

	s.events.publish(DispatchEvent{Name: ev.T, Sequence: *ev.S, Data: ev.D})
	return nil
}

func (s *Session) onHello(ctx context.Context, ev *RawEvent) error {
	var d helloData
	if err := json.Unmarshal(ev.D, &d); err != nil {
		return fmt.Errorf("%w: decode HELLO: %w", ErrProtocolViolation, err)
	}
	s.state.setHeartbeatInterval(d.HeartbeatInterval)
	if s.onHelloHook != nil {
		s.onHelloHook()
	}
	return s.identifyOrResume(ctx)
}
