// Package voice holds the opaque per-guild voice connection handle the
// gateway session hands off to once a VOICE_STATE_UPDATE/VOICE_SERVER_UPDATE
// pair arrives. The voice Gateway's own protocol (SSRC negotiation, UDP
// transport, RTP framing, DAVE end-to-end encryption) is out of scope for
// this module; this package only tracks the session metadata a caller
// needs to eventually dial that connection with whatever player they bring.
package voice

import "sync"

// Voice is the metadata gathered for one guild's voice session. It is
// intentionally inert: ApplyVoiceState and ApplyServerUpdate just fold in
// whatever fields arrived most recently, the way discpp's voice manager accumulates state across the
// VOICE_STATE_UPDATE/VOICE_SERVER_UPDATE pair before a UDP session ever
// opens.
type Voice struct {
	mu sync.RWMutex

	guildID   string
	channelID string
	userID    string
	sessionID string
	token     string
	endpoint  string
}

func New(guildID string) *Voice {
	return &Voice{guildID: guildID}
}

func (v *Voice) GuildID() string {
	return v.guildID
}

// ApplyVoiceState folds in the fields carried by a VOICE_STATE_UPDATE for
// this guild's bot user.
func (v *Voice) ApplyVoiceState(channelID, userID, sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.channelID = channelID
	v.userID = userID
	v.sessionID = sessionID
}

// ApplyServerUpdate folds in the fields carried by a VOICE_SERVER_UPDATE.
func (v *Voice) ApplyServerUpdate(token, endpoint string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token = token
	v.endpoint = endpoint
}

// Ready reports whether enough state has accumulated to open a voice
// connection (both the state update and the server update have arrived).
func (v *Voice) Ready() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sessionID != "" && v.token != "" && v.endpoint != ""
}

// Snapshot is a point-in-time copy of the fields a caller needs to open
// the voice UDP session itself.
type Snapshot struct {
	GuildID   string
	ChannelID string
	UserID    string
	SessionID string
	Token     string
	Endpoint  string
}

func (v *Voice) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{
		GuildID:   v.guildID,
		ChannelID: v.channelID,
		UserID:    v.userID,
		SessionID: v.sessionID,
		Token:     v.token,
		Endpoint:  v.endpoint,
	}
}
