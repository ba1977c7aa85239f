// Package roster is the guild roster cache the gateway session feeds from
// READY and GUILD_CREATE dispatches, grounded on discpp's
// gateway::connection::event_ready/event_guild_create/parse_channel: READY
// seeds the guild IDs (most marked unavailable), and each GUILD_CREATE that
// follows fills in the name, permissions, and channel list for the guild
// with the matching ID.
package roster

import (
	"sync"

	"github.com/hendrywilliam/siren/internal/structs"
)

type Cache struct {
	mu     sync.RWMutex
	guilds map[string]structs.Guild
}

func New() *Cache {
	return &Cache{guilds: make(map[string]structs.Guild)}
}

// Seed populates the roster from READY's guild list. Guilds Discord marks
// unavailable at this point have no name or channels yet; those arrive
// later as GUILD_CREATE dispatches.
func (c *Cache) Seed(guilds []structs.Guild) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guilds = make(map[string]structs.Guild, len(guilds))
	for _, g := range guilds {
		c.guilds[g.ID] = g
	}
}

// ApplyGuildCreate fills in the roster entry for g.ID, or inserts it if
// READY never mentioned it (a guild the bot joined mid-session).
func (c *Cache) ApplyGuildCreate(g structs.Guild) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guilds[g.ID] = g
}

// Remove drops a guild from the roster, e.g. on GUILD_DELETE.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.guilds, id)
}

func (c *Cache) Get(id string) (structs.Guild, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.guilds[id]
	return g, ok
}

// List returns a snapshot of every guild currently in the roster.
func (c *Cache) List() []structs.Guild {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]structs.Guild, 0, len(c.guilds))
	for _, g := range c.guilds {
		out = append(out, g)
	}
	return out
}
