package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hendrywilliam/siren/internal/queue"
	"github.com/hendrywilliam/siren/internal/rest"
	"github.com/hendrywilliam/siren/internal/roster"
	"github.com/hendrywilliam/siren/internal/structs"
	"github.com/hendrywilliam/siren/internal/transport"
	"github.com/hendrywilliam/siren/internal/voicemanager"
)

// Config is everything the session needs to identify and classify itself
// to the Gateway. Token and Intents are required; the rest default
// sensibly for a single-shard bot.
type Config struct {
	Token          string
	Intents        int
	Shard          []int
	GatewayVersion int
	CompressStream bool
	EventBuffer    int
	Logger         *slog.Logger
	// GatewayURL pins the Gateway URL instead of calling REST's
	// GET /gateway/bot bootstrap on every fresh connect. Sharding
	// managers that already fetched and cached the URL across shards
	// should set this; a single-shard bot can leave it empty.
	GatewayURL string
}

func (c *Config) setDefaults() {
	if c.GatewayVersion == 0 {
		c.GatewayVersion = 10
	}
	if c.EventBuffer == 0 {
		c.EventBuffer = 256
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Session is the public handle to a running Gateway connection: the
// entry point for SPEC_FULL.md's external interface (New/Open/Events/
// Send/Close/Guilds).
type Session struct {
	cfg    Config
	rest   *rest.REST
	dialer transport.Dialer

	state    *sessionState
	outbound queue.Queue
	events   *eventStream
	roster   *roster.Cache
	voices   *voicemanager.VoiceManager
	logger   *slog.Logger

	connMu sync.Mutex
	conn   transport.Conn

	// onHelloHook, when set, is invoked once HELLO has been processed for
	// the current connection attempt. It lets heartbeatLoop start only
	// after the heartbeat interval is known, without polling session state.
	onHelloHook func()

	// runMu guards runWait and the closed-or-not decision Open makes
	// before starting each runOnce cycle, so Close can never observe a
	// run starting after it has already begun tearing the session down.
	runMu   sync.Mutex
	runWait chan struct{}

	cancel    context.CancelFunc
	closeOnce sync.Once
	closed    chan struct{}
}

// New builds a Session bound to the given REST client (used to bootstrap
// the Gateway URL) and transport dialer. A nil dialer defaults to a
// gorilla/websocket dialer against the Gateway's documented version/
// encoding query parameters.
func New(cfg Config, restClient *rest.REST, dialer transport.Dialer) *Session {
	cfg.setDefaults()
	if dialer == nil {
		dialer = transport.NewGorillaDialer(cfg.GatewayVersion, cfg.CompressStream)
	}
	return &Session{
		cfg:      cfg,
		rest:     restClient,
		dialer:   dialer,
		state:    newSessionState(),
		outbound: queue.NewFIFO(),
		events:   newEventStream(cfg.EventBuffer),
		roster:   roster.New(),
		voices:   voicemanager.New(),
		logger:   cfg.Logger,
		closed:   make(chan struct{}),
	}
}

// Events returns the consumer-facing stream of decoded DISPATCH events.
func (s *Session) Events() <-chan DispatchEvent {
	return s.events.events()
}

// Guilds returns a snapshot of the roster cache built from READY and
// GUILD_CREATE dispatches.
func (s *Session) Guilds() []structs.Guild {
	return s.roster.List()
}

// Voices returns the voice manager tracking per-guild voice session
// metadata accumulated from VOICE_STATE_UPDATE/VOICE_SERVER_UPDATE.
func (s *Session) Voices() *voicemanager.VoiceManager {
	return s.voices
}

// Send enqueues a caller-initiated frame (PRESENCE_UPDATE,
// VOICE_STATE_UPDATE, REQUEST_GUILD_MEMBERS, REQUEST_SOUNDBOARD_SOUNDS).
// It returns ErrClosed if the session has been closed.
func (s *Session) Send(op Opcode, payload any) error {
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	return s.enqueue(envelopeFor(op, payload))
}

// Open dials the Gateway and runs the session until ctx is cancelled, a
// non-reconnectable error occurs, or Close is called. It owns the
// reconnect loop: each failed attempt that isn't fatal triggers a fresh
// dial after an exponential backoff, reusing the cached session ID for a
// RESUME when the state machine allows it.
func (s *Session) Open(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	attempt := 0
	for {
		runDone, ok := s.beginRun()
		if !ok {
			return nil
		}
		err := s.runOnce(ctx)
		close(runDone)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		if errors.Is(err, ErrAuthenticationFailed) {
			s.logger.Error("gateway: non-reconnectable failure", "error", err)
			return err
		}

		s.logger.Warn("gateway: connection lost, reconnecting", "error", err, "attempt", attempt)
		s.state.setPhase(PhaseReconnecting)

		// INVALID_SESSION follows its own uniform 1-5s schedule, not the
		// exponential transport/liveness backoff: it must not escalate
		// across repeated invalid sessions within the same Open call.
		var delay time.Duration
		if errors.Is(err, ErrSessionInvalidated) {
			delay = invalidSessionDelay()
		} else {
			delay = backoff(attempt)
			attempt++
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// beginRun registers a new run-in-progress marker unless the session is
// already closed, atomically with respect to Close: either this call
// sees the session closed and refuses to start a new run, or Close
// (which closes s.closed before reading runWait) will see this run's
// done channel and wait on it.
func (s *Session) beginRun() (chan struct{}, bool) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	select {
	case <-s.closed:
		return nil, false
	default:
	}
	done := make(chan struct{})
	s.runWait = done
	return done, true
}

// runOnce performs a single dial-through-disconnect cycle: resolve the
// URL, dial, and run the reader/writer/heartbeat trio until one of them
// returns.
func (s *Session) runOnce(ctx context.Context) error {
	url, err := s.resolveURL(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}

	s.state.setPhase(PhaseAwaitingHello)
	conn, err := s.dialer.Dial(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}

	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()
	defer conn.Close()

	helloReceived := make(chan struct{})
	s.onHelloHook = func() { closeOnce(helloReceived) }
	defer func() { s.onHelloHook = nil }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop(gctx, conn) })
	g.Go(func() error { return s.writeLoop(gctx, conn) })
	g.Go(func() error {
		select {
		case <-helloReceived:
		case <-gctx.Done():
			return gctx.Err()
		}
		return s.heartbeatLoop(gctx)
	})
	// gorilla/websocket's Read has no per-call cancellation; once any of
	// the three goroutines above fails and cancels gctx, force-close the
	// socket so a reader blocked in conn.Read wakes up instead of hanging
	// until the remote end notices.
	g.Go(func() error {
		<-gctx.Done()
		conn.Close()
		return nil
	})

	return g.Wait()
}

// resolveURL picks the RESUME URL when the session can resume, otherwise
// the pinned Config.GatewayURL if set, and only then asks REST for the
// recommended Gateway URL, per the bootstrap contract.
func (s *Session) resolveURL(ctx context.Context) (string, error) {
	if s.state.canResume() {
		_, resumeURL, _ := s.state.resumeTarget()
		if resumeURL != "" {
			return normalizeGatewayURL(resumeURL), nil
		}
	}
	if s.cfg.GatewayURL != "" {
		return normalizeGatewayURL(s.cfg.GatewayURL), nil
	}
	res, err := s.rest.GetGateway(ctx)
	if err != nil {
		return "", err
	}
	return normalizeGatewayURL(res.URL), nil
}

func normalizeGatewayURL(url string) string {
	return strings.TrimSuffix(url, "/")
}

// Close tears down the session and does not return until the currently
// running reader/writer/heartbeat/watcher group (if any) has fully
// exited, so no frame can be written after Close returns. It cancels the
// run loop, closes the outbound queue and event stream, and closes the
// live transport if one is connected.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.runMu.Lock()
		close(s.closed)
		wait := s.runWait
		s.runMu.Unlock()

		if s.cancel != nil {
			s.cancel()
		}
		s.state.setPhase(PhaseClosed)
		s.outbound.Close()
		s.connMu.Lock()
		if s.conn != nil {
			s.conn.Close()
		}
		s.connMu.Unlock()

		if wait != nil {
			<-wait
		}
		s.events.close()
	})
	return nil
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}
