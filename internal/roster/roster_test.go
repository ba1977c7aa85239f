package roster

import (
	"testing"

	"github.com/hendrywilliam/siren/internal/structs"
)

func TestSeedThenGuildCreateFillsDetails(t *testing.T) {
	c := New()
	c.Seed([]structs.Guild{
		{ID: "1", Unavailable: true},
		{ID: "2", Unavailable: true},
	})

	c.ApplyGuildCreate(structs.Guild{
		ID:   "1",
		Name: "Test Guild",
		Channels: []structs.Channel{
			{ID: "10", Name: "general"},
		},
	})

	g, ok := c.Get("1")
	if !ok {
		t.Fatal("expected guild 1 to be present")
	}
	if g.Name != "Test Guild" {
		t.Fatalf("got name %q, want Test Guild", g.Name)
	}
	if len(g.Channels) != 1 || g.Channels[0].Name != "general" {
		t.Fatalf("channels not applied: %+v", g.Channels)
	}

	g2, ok := c.Get("2")
	if !ok || g2.Name != "" {
		t.Fatalf("guild 2 should remain unfilled until its own GUILD_CREATE: %+v", g2)
	}
}

func TestApplyGuildCreateForUnseenGuild(t *testing.T) {
	c := New()
	c.ApplyGuildCreate(structs.Guild{ID: "99", Name: "Joined Mid Session"})
	g, ok := c.Get("99")
	if !ok || g.Name != "Joined Mid Session" {
		t.Fatalf("expected guild 99 to be inserted: %+v", g)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.ApplyGuildCreate(structs.Guild{ID: "5"})
	c.Remove("5")
	if _, ok := c.Get("5"); ok {
		t.Fatal("expected guild 5 to be removed")
	}
}

func TestListSnapshot(t *testing.T) {
	c := New()
	c.Seed([]structs.Guild{{ID: "1"}, {ID: "2"}})
	if len(c.List()) != 2 {
		t.Fatalf("got %d guilds, want 2", len(c.List()))
	}
}
