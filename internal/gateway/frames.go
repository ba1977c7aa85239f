package gateway

// Outbound frame payloads. Heartbeat, identify and resume frames have
// their own constructors and caller payloads go through envelopeFor; each
// is wrapped in the {op, d} envelope before it is handed to the outbound
// queue, so the writer goroutine never needs to know which variant it is
// serializing.

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

type identifyData struct {
	Token          string             `json:"token"`
	Properties     identifyProperties `json:"properties"`
	Intents        int                `json:"intents"`
	Shard          []int              `json:"shard,omitempty"`
	LargeThreshold int                `json:"large_threshold,omitempty"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       uint64 `json:"seq"`
}

// PresenceUpdate is the caller-facing payload for OpcodePresenceUpdate.
type PresenceUpdate struct {
	Since  *int64       `json:"since"`
	Game   *interface{} `json:"game"`
	Status string       `json:"status"`
	AFK    bool         `json:"afk"`
}

// VoiceStateUpdate is the caller-facing payload for OpcodeVoiceStateUpdate.
type VoiceStateUpdate struct {
	GuildID   string  `json:"guild_id"`
	ChannelID *string `json:"channel_id"`
	SelfMute  bool    `json:"self_mute"`
	SelfDeaf  bool    `json:"self_deaf"`
}

// RequestGuildMembers is the caller-facing payload for
// OpcodeRequestGuildMembers.
type RequestGuildMembers struct {
	GuildID   string   `json:"guild_id"`
	Query     string   `json:"query,omitempty"`
	Limit     int      `json:"limit"`
	UserIDs   []string `json:"user_ids,omitempty"`
	Presences bool     `json:"presences,omitempty"`
}

// RequestSoundboardSounds is the caller-facing payload for
// OpcodeRequestSoundboardSounds.
type RequestSoundboardSounds struct {
	GuildIDs []string `json:"guild_ids"`
}

func heartbeatFrame(seq uint64) outboundEnvelope {
	var d any
	if seq != 0 {
		d = seq
	}
	return outboundEnvelope{Op: OpcodeHeartbeat, D: d}
}

func identifyFrame(token string, intents int, shard []int) outboundEnvelope {
	return outboundEnvelope{
		Op: OpcodeIdentify,
		D: identifyData{
			Token: token,
			Properties: identifyProperties{
				OS:      "linux",
				Browser: "siren",
				Device:  "siren",
			},
			Intents:        intents,
			Shard:          shard,
			LargeThreshold: 50,
		},
	}
}

func resumeFrame(token, sessionID string, seq uint64) outboundEnvelope {
	return outboundEnvelope{
		Op: OpcodeResume,
		D: resumeData{
			Token:     token,
			SessionID: sessionID,
			Seq:       seq,
		},
	}
}

// envelopeFor wraps a caller payload into its Gateway opcode envelope for
// Session.Send. Any value is accepted as the d payload.
func envelopeFor(op Opcode, data any) outboundEnvelope {
	return outboundEnvelope{Op: op, D: data}
}
