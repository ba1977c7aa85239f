package gateway

import (
	"encoding/json"

	"github.com/hendrywilliam/siren/internal/structs"
)

// onReady seeds the session and the roster cache from READY's payload,
// grounded on discpp's event_ready: session_id and the resume URL are
// stashed for a future RESUME, and every guild ID is seeded into the
// roster (most arrive unavailable; GUILD_CREATE fills them in).
func (s *Session) onReady(d readyData) {
	s.state.setReady(d.SessionID, d.ResumeGatewayURL)

	if s.roster != nil {
		guilds := make([]structs.Guild, 0, len(d.Guilds))
		for _, g := range d.Guilds {
			guilds = append(guilds, structs.Guild{ID: g.ID, Unavailable: g.Unavailable})
		}
		s.roster.Seed(guilds)
	}

	s.logger.Info("gateway: ready",
		"session_id", d.SessionID,
		"guild_count", len(d.Guilds),
	)
}

// onGuildCreate fills the roster entry for the guild in g, grounded on
// discpp's event_guild_create/parse_channel: name, permissions, and the
// channel list are copied into the existing roster slot by guild ID.
func (s *Session) onGuildCreate(raw json.RawMessage) {
	if s.roster == nil {
		return
	}
	var g structs.Guild
	if err := json.Unmarshal(raw, &g); err != nil {
		s.logger.Warn("gateway: could not decode GUILD_CREATE", "error", err)
		return
	}
	s.roster.ApplyGuildCreate(g)
}

func (s *Session) onGuildDelete(raw json.RawMessage) {
	if s.roster == nil {
		return
	}
	var d struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return
	}
	s.roster.Remove(d.ID)
}

// onVoiceStateUpdate and onVoiceServerUpdate feed the voice manager: the
// gateway session only forwards the metadata both dispatches carry,
// opening the actual voice UDP session is left to the caller.
func (s *Session) onVoiceStateUpdate(raw json.RawMessage) {
	var vs structs.VoiceState
	if err := json.Unmarshal(raw, &vs); err != nil {
		s.logger.Warn("gateway: could not decode VOICE_STATE_UPDATE", "error", err)
		return
	}
	if vs.GuildID == "" {
		return
	}
	s.voices.Add(vs.GuildID).ApplyVoiceState(vs.ChannelID, vs.UserID, vs.SessionID)
}

func (s *Session) onVoiceServerUpdate(raw json.RawMessage) {
	var vs structs.VoiceServerUpdate
	if err := json.Unmarshal(raw, &vs); err != nil {
		s.logger.Warn("gateway: could not decode VOICE_SERVER_UPDATE", "error", err)
		return
	}
	if vs.GuildID == "" {
		return
	}
	s.voices.Add(vs.GuildID).ApplyServerUpdate(vs.Token, vs.Endpoint)
}
