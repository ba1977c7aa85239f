// Package voicemanager tracks one internal/voice.Voice handle per guild
// the bot has an active or pending voice session in, adapted from the
// teacher's guild-keyed voice manager.
package voicemanager

import (
	"sync"

	"github.com/hendrywilliam/siren/internal/voice"
)

type VoiceManager struct {
	mu     sync.RWMutex
	voices map[string]*voice.Voice
}

func New() *VoiceManager {
	return &VoiceManager{voices: make(map[string]*voice.Voice)}
}

// Add creates (or returns the existing) voice handle for a guild.
func (m *VoiceManager) Add(guildID string) *voice.Voice {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.voices[guildID]; ok {
		return v
	}
	v := voice.New(guildID)
	m.voices[guildID] = v
	return v
}

func (m *VoiceManager) Get(guildID string) (*voice.Voice, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.voices[guildID]
	return v, ok
}

func (m *VoiceManager) Delete(guildID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.voices, guildID)
}
