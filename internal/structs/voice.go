package structs

import "time"

// VoiceState and VoiceServerUpdate are the two DISPATCH payloads the gateway
// forwards to the voice collaborator (internal/voicemanager) when a bot joins
// or leaves a voice channel. The voice gateway protocol itself (SSRC
// negotiation, UDP transport, RTP framing) is out of scope for this module.
type VoiceState struct {
	GuildID                 string      `json:"guild_id"`
	ChannelID               string      `json:"channel_id"`
	UserID                  string      `json:"user_id"`
	Member                  interface{} `json:"member,omitempty"`
	SessionID               string      `json:"session_id"`
	Deaf                    bool        `json:"deaf"`
	Mute                    bool        `json:"mute"`
	SelfDeaf                bool        `json:"self_deaf"`
	SelfMute                bool        `json:"self_mute"`
	SelfStream              bool        `json:"self_stream"`
	SelfVideo               bool        `json:"self_video"`
	Suppress                bool        `json:"suppress"`
	RequestToSpeakTimestamp time.Time   `json:"request_to_speak_timestamp"`
}

type VoiceServerUpdate struct {
	Token    string `json:"token"`
	GuildID  string `json:"guild_id"`
	Endpoint string `json:"endpoint"`
}
