// Package config loads the environment-driven settings this module's
// entrypoint needs, the way the teacher's utils.LoadConfiguration does:
// required variables fail fast with a logged error and a non-zero exit,
// optional variables fall back to sane defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ApplicationID   string
	BotToken        string
	PublicKey       string
	HTTPBaseURL     string
	GatewayVersion  int
	ShardID         int
	ShardCount      int
	GatewayCompress bool
	WebhookAddr     string
	Env             string
}

// Load reads the process environment, exiting the process if a required
// variable is missing. Call godotenv.Load() before Load if a .env file
// should be read first; config itself only reads os.Environ.
func Load() Config {
	cfg := Config{}
	requiredEnv := map[string]*string{
		"DC_APPLICATION_ID": &cfg.ApplicationID,
		"DC_BOT_TOKEN":      &cfg.BotToken,
		"DC_PUBLIC_KEY":     &cfg.PublicKey,
		"DC_HTTP_BASE_URL":  &cfg.HTTPBaseURL,
		"APP_ENV":           &cfg.Env,
	}
	for k, v := range requiredEnv {
		val, ok := os.LookupEnv(k)
		if !ok {
			slog.Error(fmt.Sprintf("config: missing required environment variable %s", k))
			os.Exit(1)
		}
		*v = val
	}

	// A token sourced from a file or a .env line often carries a trailing
	// newline; a raw IDENTIFY with that newline silently fails.
	cfg.BotToken = strings.TrimRight(cfg.BotToken, " \t\r\n")

	cfg.GatewayVersion = optionalInt("DC_GATEWAY_VERSION", 10)
	cfg.ShardID = optionalInt("DC_SHARD_ID", 0)
	cfg.ShardCount = optionalInt("DC_SHARD_COUNT", 1)
	cfg.GatewayCompress = optionalBool("DC_GATEWAY_COMPRESS", false)
	cfg.WebhookAddr = optionalString("DC_WEBHOOK_ADDR", ":8080")

	return cfg
}

func optionalString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func optionalInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		slog.Warn(fmt.Sprintf("config: %s is not a valid integer, using default", key), "value", val, "default", fallback)
		return fallback
	}
	return n
}

func optionalBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		slog.Warn(fmt.Sprintf("config: %s is not a valid boolean, using default", key), "value", val, "default", fallback)
		return fallback
	}
	return b
}
