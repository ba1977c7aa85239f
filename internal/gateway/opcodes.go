// Package gateway is the Gateway session engine: the component that owns
// the socket, enforces the handshake → identify/resume → steady-state →
// reconnect lifecycle, runs the heartbeat watchdog, serializes outbound
// writes, and surfaces decoded DISPATCH events to the consumer.
package gateway

import (
	"encoding/json"
	"log/slog"
)

// Opcode is the Gateway's wire-level operation code (0-11, plus the
// forward-compatible REQUEST_SOUNDBOARD_SOUNDS opcode Discord added later).
type Opcode = int

const (
	OpcodeDispatch                Opcode = 0
	OpcodeHeartbeat               Opcode = 1
	OpcodeIdentify                Opcode = 2
	OpcodePresenceUpdate          Opcode = 3
	OpcodeVoiceStateUpdate        Opcode = 4
	OpcodeResume                  Opcode = 6
	OpcodeReconnect               Opcode = 7
	OpcodeRequestGuildMembers     Opcode = 8
	OpcodeInvalidSession          Opcode = 9
	OpcodeHello                   Opcode = 10
	OpcodeHeartbeatAck            Opcode = 11
	OpcodeRequestSoundboardSounds Opcode = 31
)

// CloseCode is a Gateway WebSocket close code.
type CloseCode = int

const (
	CloseUnknownError         CloseCode = 4000
	CloseUnknownOpcode        CloseCode = 4001
	CloseDecodeError          CloseCode = 4002
	CloseNotAuthenticated     CloseCode = 4003
	CloseAuthenticationFailed CloseCode = 4004
	CloseAlreadyAuthenticated CloseCode = 4005
	CloseInvalidSeq           CloseCode = 4007
	CloseRateLimited          CloseCode = 4008
	CloseSessionTimedOut      CloseCode = 4009
	CloseInvalidShard         CloseCode = 4010
	CloseShardingRequired     CloseCode = 4011
	CloseInvalidAPIVersion    CloseCode = 4012
	CloseInvalidIntents       CloseCode = 4013
	CloseDisallowedIntents    CloseCode = 4014
)

// nonReconnectableCloseCodes are the close codes the spec classifies as
// authentication failures: reconnecting would just repeat the failure.
var nonReconnectableCloseCodes = map[CloseCode]bool{
	CloseAuthenticationFailed: true,
	CloseInvalidShard:         true,
	CloseShardingRequired:     true,
	CloseInvalidAPIVersion:    true,
	CloseInvalidIntents:       true,
	CloseDisallowedIntents:    true,
}

// IsNonReconnectable reports whether a close code should surface fatally
// instead of triggering a reconnect attempt.
func IsNonReconnectable(code CloseCode) bool {
	return nonReconnectableCloseCodes[code]
}

// RawEvent is the inbound envelope {op, d, s?, t?} exactly as it travels on
// the wire. D is kept as json.RawMessage so opcode-specific decoding can be
// deferred to the handler that actually needs it. S is a pointer because a
// DISPATCH frame that omits s entirely is a protocol violation, distinct
// from a legitimate s:0 - a bare uint64 can't tell those apart.
type RawEvent struct {
	Op Opcode          `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  *uint64         `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

func (e *RawEvent) LogValue() slog.Value {
	var seq uint64
	if e.S != nil {
		seq = *e.S
	}
	return slog.GroupValue(
		slog.Int("op", e.Op),
		slog.Uint64("sequence", seq),
		slog.String("event_name", e.T),
	)
}

// outboundEnvelope is what every outbound frame is marshaled into before
// being handed to the transport. D is always written, so a HEARTBEAT with
// no sequence yet goes out as "d":null.
type outboundEnvelope struct {
	Op Opcode `json:"op"`
	D  any    `json:"d"`
}

type helloData struct {
	HeartbeatInterval uint64 `json:"heartbeat_interval"`
}

// readyData is the subset of the READY dispatch the lifecycle controller
// and roster cache care about; everything else is opaque to the core.
type readyData struct {
	SessionID        string           `json:"session_id"`
	ResumeGatewayURL string           `json:"resume_gateway_url"`
	Shard            []int            `json:"shard,omitempty"`
	Guilds           []readyGuildData `json:"guilds"`
}

type readyGuildData struct {
	ID          string `json:"id"`
	Unavailable bool   `json:"unavailable"`
}
