package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"DC_APPLICATION_ID": "app-id",
		"DC_BOT_TOKEN":       "bot-token",
		"DC_PUBLIC_KEY":      "public-key",
		"DC_HTTP_BASE_URL":   "https://discord.com/api/v10",
		"APP_ENV":            "development",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadAppliesOptionalDefaults(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("DC_SHARD_ID")
	os.Unsetenv("DC_SHARD_COUNT")
	os.Unsetenv("DC_GATEWAY_COMPRESS")
	os.Unsetenv("DC_GATEWAY_VERSION")
	os.Unsetenv("DC_WEBHOOK_ADDR")

	cfg := Load()
	if cfg.ApplicationID != "app-id" {
		t.Fatalf("got application id %q, want app-id", cfg.ApplicationID)
	}
	if cfg.ShardCount != 1 {
		t.Fatalf("got shard count %d, want default 1", cfg.ShardCount)
	}
	if cfg.GatewayVersion != 10 {
		t.Fatalf("got gateway version %d, want default 10", cfg.GatewayVersion)
	}
	if cfg.GatewayCompress {
		t.Fatal("expected gateway compress to default false")
	}
	if cfg.WebhookAddr != ":8080" {
		t.Fatalf("got webhook addr %q, want :8080", cfg.WebhookAddr)
	}
}

func TestLoadHonorsOptionalOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DC_SHARD_ID", "2")
	t.Setenv("DC_SHARD_COUNT", "4")
	t.Setenv("DC_GATEWAY_COMPRESS", "true")

	cfg := Load()
	if cfg.ShardID != 2 {
		t.Fatalf("got shard id %d, want 2", cfg.ShardID)
	}
	if cfg.ShardCount != 4 {
		t.Fatalf("got shard count %d, want 4", cfg.ShardCount)
	}
	if !cfg.GatewayCompress {
		t.Fatal("expected gateway compress to be true")
	}
}
