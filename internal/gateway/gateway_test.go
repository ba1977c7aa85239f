package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/hendrywilliam/siren/internal/transport"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestSession(conns ...*fakeConn) (*Session, *fakeDialer) {
	dialer := newFakeDialer(conns...)
	cfg := Config{
		Token:      "test-token",
		Intents:    1,
		GatewayURL: "wss://gateway.test",
		Logger:     testLogger(),
	}
	s := New(cfg, nil, dialer)
	return s, dialer
}

func helloFrame(intervalMS uint64) []byte {
	b, _ := json.Marshal(RawEvent{
		Op: OpcodeHello,
		D:  mustJSON(helloData{HeartbeatInterval: intervalMS}),
	})
	return b
}

func readyFrame(seq uint64, sessionID, resumeURL string, guildIDs []string) []byte {
	guilds := make([]readyGuildData, 0, len(guildIDs))
	for _, id := range guildIDs {
		guilds = append(guilds, readyGuildData{ID: id, Unavailable: true})
	}
	b, _ := json.Marshal(RawEvent{
		Op: OpcodeDispatch,
		S:  &seq,
		T:  "READY",
		D: mustJSON(readyData{
			SessionID:        sessionID,
			ResumeGatewayURL: resumeURL,
			Guilds:           guilds,
		}),
	})
	return b
}

// dispatchFrameMissingSeq builds a DISPATCH frame with s omitted entirely,
// distinct from a legitimate s:0, to exercise the protocol-violation path.
func dispatchFrameMissingSeq(eventName string) []byte {
	b, _ := json.Marshal(RawEvent{
		Op: OpcodeDispatch,
		T:  eventName,
		D:  mustJSON(map[string]string{}),
	})
	return b
}

func heartbeatAckFrame() []byte {
	b, _ := json.Marshal(RawEvent{Op: OpcodeHeartbeatAck})
	return b
}

func invalidSessionFrame(resumable bool) []byte {
	b, _ := json.Marshal(RawEvent{Op: OpcodeInvalidSession, D: mustJSON(resumable)})
	return b
}

func reconnectFrame() []byte {
	b, _ := json.Marshal(RawEvent{Op: OpcodeReconnect})
	return b
}

func voiceStateUpdateFrame(guildID, channelID, userID, sessionID string) []byte {
	seq := uint64(2)
	b, _ := json.Marshal(RawEvent{
		Op: OpcodeDispatch,
		S:  &seq,
		T:  "VOICE_STATE_UPDATE",
		D: mustJSON(map[string]string{
			"guild_id":   guildID,
			"channel_id": channelID,
			"user_id":    userID,
			"session_id": sessionID,
		}),
	})
	return b
}

func voiceServerUpdateFrame(guildID, token, endpoint string) []byte {
	seq := uint64(3)
	b, _ := json.Marshal(RawEvent{
		Op: OpcodeDispatch,
		S:  &seq,
		T:  "VOICE_SERVER_UPDATE",
		D: mustJSON(map[string]string{
			"guild_id": guildID,
			"token":    token,
			"endpoint": endpoint,
		}),
	})
	return b
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func waitForPhase(t *testing.T, s *Session, want Phase, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if s.state.getPhase() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("phase never reached %v, stuck at %v", want, s.state.getPhase())
}

// Scenario 1: fresh connect. HELLO -> IDENTIFY -> READY should bring the
// session to PhaseReady with the session ID and roster populated.
func TestFreshConnect(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Open(ctx)

	conn.push(helloFrame(30000))

	select {
	case sent := <-conn.sent:
		var ev RawEvent
		if err := json.Unmarshal(sent, &ev); err != nil {
			t.Fatalf("decode sent frame: %v", err)
		}
		if ev.Op != OpcodeIdentify {
			t.Fatalf("got op %d, want IDENTIFY", ev.Op)
		}
	case <-time.After(time.Second):
		t.Fatal("client never sent IDENTIFY")
	}

	conn.push(readyFrame(1, "session-abc", "wss://resume.test", []string{"1", "2"}))
	waitForPhase(t, s, PhaseReady, time.Second)

	select {
	case ev := <-s.Events():
		if ev.Name != "READY" {
			t.Fatalf("got event %q, want READY", ev.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("READY never surfaced on Events()")
	}

	if len(s.Guilds()) != 2 {
		t.Fatalf("got %d guilds, want 2", len(s.Guilds()))
	}
	s.Close()
}

// Scenario 2: resume. A session that already holds a session ID should
// send RESUME, not IDENTIFY, on the next HELLO.
func TestResume(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)
	s.state.setReady("session-abc", "wss://resume.test")
	s.state.setSequence(42)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Open(ctx)

	conn.push(helloFrame(30000))

	select {
	case sent := <-conn.sent:
		var ev RawEvent
		if err := json.Unmarshal(sent, &ev); err != nil {
			t.Fatalf("decode sent frame: %v", err)
		}
		if ev.Op != OpcodeResume {
			t.Fatalf("got op %d, want RESUME", ev.Op)
		}
	case <-time.After(time.Second):
		t.Fatal("client never sent RESUME")
	}
	s.Close()
}

// Scenario 3: zombie detection. No HEARTBEAT_ACK before the next tick
// must surface ErrLivenessFailure and move the session to
// PhaseReconnecting; the test cancels during the reconnect backoff, before
// any redial.
func TestZombieDetection(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Open(ctx) }()

	conn.push(helloFrame(5))
	<-conn.sent // IDENTIFY
	conn.push(readyFrame(1, "session-abc", "wss://resume.test", nil))
	waitForPhase(t, s, PhaseReady, time.Second)

	// Never push a HEARTBEAT_ACK: the next tick should detect a pending,
	// unacknowledged heartbeat and fail the connection.
	select {
	case sent := <-conn.sent:
		var ev RawEvent
		json.Unmarshal(sent, &ev)
		if ev.Op != OpcodeHeartbeat {
			t.Fatalf("got op %d, want HEARTBEAT", ev.Op)
		}
	case <-time.After(time.Second):
		t.Fatal("heartbeat was never sent")
	}

	waitForPhase(t, s, PhaseReconnecting, 2*time.Second)
	cancel()
	<-errCh
}

// Scenario 4: non-resumable INVALID_SESSION clears cached session state
// so the next HELLO identifies fresh instead of resuming.
func TestInvalidSessionNonResumable(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)
	s.state.setReady("session-abc", "wss://resume.test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- s.Open(ctx) }()

	conn.push(helloFrame(30000))
	<-conn.sent // RESUME

	conn.push(invalidSessionFrame(false))

	time.Sleep(20 * time.Millisecond)
	if s.state.canResume() {
		t.Fatal("expected session state to be cleared after non-resumable INVALID_SESSION")
	}
	cancel()
	<-errCh
}

// A DISPATCH frame missing s entirely (not s:0) is a protocol violation
// and must fail the connection rather than being silently accepted.
func TestDispatchMissingSequenceIsProtocolViolation(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- s.Open(ctx) }()

	conn.push(helloFrame(30000))
	<-conn.sent // IDENTIFY
	conn.push(dispatchFrameMissingSeq("MESSAGE_CREATE"))

	waitForPhase(t, s, PhaseReconnecting, time.Second)
	cancel()
	<-errCh
}

// Scenario 5: server-requested reconnect (opcode 7) must tear down the
// current connection and redial.
func TestServerRequestedReconnect(t *testing.T) {
	conn1 := newFakeConn()
	conn2 := newFakeConn()
	s, _ := newTestSession(conn1, conn2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Open(ctx)

	conn1.push(helloFrame(30000))
	<-conn1.sent // IDENTIFY
	conn1.push(readyFrame(1, "session-abc", "wss://resume.test", nil))
	waitForPhase(t, s, PhaseReady, time.Second)

	conn1.push(reconnectFrame())
	conn2.push(helloFrame(30000))
	select {
	case sent := <-conn2.sent:
		var ev RawEvent
		json.Unmarshal(sent, &ev)
		if ev.Op != OpcodeResume {
			t.Fatalf("got op %d, want RESUME on redial", ev.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second connection never sent RESUME")
	}
	s.Close()
}

// Ordered caller writes. Back-to-back caller Sends must each leave the
// writer as one whole, decodable PRESENCE_UPDATE frame. The heartbeat
// interval here is 30s, so no heartbeat tick is expected in between.
func TestCallerSendsWrittenAsWholeFrames(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Open(ctx)

	conn.push(helloFrame(30000))
	<-conn.sent // IDENTIFY
	conn.push(readyFrame(1, "session-abc", "wss://resume.test", nil))
	waitForPhase(t, s, PhaseReady, time.Second)

	for i := 0; i < 5; i++ {
		if err := s.Send(OpcodePresenceUpdate, PresenceUpdate{Status: "online"}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	for i := 0; i < 5; i++ {
		select {
		case sent := <-conn.sent:
			var ev RawEvent
			if err := json.Unmarshal(sent, &ev); err != nil {
				t.Fatalf("decode frame %d: %v", i, err)
			}
			if ev.Op != OpcodePresenceUpdate {
				t.Fatalf("frame %d: got op %d, want PRESENCE_UPDATE", i, ev.Op)
			}
		case <-time.After(time.Second):
			t.Fatalf("frame %d never sent", i)
		}
	}
	s.Close()
}

// Voice sideband: VOICE_STATE_UPDATE and VOICE_SERVER_UPDATE should
// accumulate into the same per-guild voice handle.
func TestVoiceSidebandAccumulatesIntoOneHandle(t *testing.T) {
	conn := newFakeConn()
	s, _ := newTestSession(conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Open(ctx)

	conn.push(helloFrame(30000))
	<-conn.sent // IDENTIFY
	conn.push(readyFrame(1, "session-abc", "wss://resume.test", nil))
	waitForPhase(t, s, PhaseReady, time.Second)

	conn.push(voiceStateUpdateFrame("guild-1", "chan-1", "user-1", "vsession-1"))
	conn.push(voiceServerUpdateFrame("guild-1", "token-1", "endpoint.test"))

	deadline := time.Now().Add(time.Second)
	var ready bool
	for time.Now().Before(deadline) {
		if v, ok := s.Voices().Get("guild-1"); ok && v.Ready() {
			ready = true
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !ready {
		t.Fatal("expected voice handle for guild-1 to become ready")
	}
	s.Close()
}

var _ transport.Dialer = (*fakeDialer)(nil)
