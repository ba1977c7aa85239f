package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/hendrywilliam/siren/internal/config"
	"github.com/hendrywilliam/siren/internal/gateway"
	"github.com/hendrywilliam/siren/internal/interactions"
	"github.com/hendrywilliam/siren/internal/logging"
	"github.com/hendrywilliam/siren/internal/rest"
	"github.com/hendrywilliam/siren/internal/structs"
	"github.com/hendrywilliam/siren/internal/webhook"
)

var signals = []os.Signal{
	os.Interrupt,
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("main: no .env file loaded", "error", err)
	}
	cfg := config.Load()

	logger := logging.New(os.Stdout, levelFor(cfg.Env))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	restClient := rest.New(cfg.HTTPBaseURL, cfg.BotToken)

	shard := []int{cfg.ShardID, cfg.ShardCount}
	session := gateway.New(gateway.Config{
		Token:          cfg.BotToken,
		Intents:        defaultIntents,
		Shard:          shard,
		GatewayVersion: cfg.GatewayVersion,
		CompressStream: cfg.GatewayCompress,
		Logger:         logger,
	}, restClient, nil)

	interactionAPI := interactions.New(restClient, cfg.ApplicationID)
	if err := interactionAPI.RegisterCommands(ctx, commands); err != nil {
		logger.Error("main: could not register application commands", "error", err)
	}

	webhookServer := webhook.NewServer(webhook.Options{
		PublicKeyHex: cfg.PublicKey,
		Sink:         session,
		Logger:       logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return session.Open(gctx) })
	g.Go(func() error { return webhookServer.Listen(gctx, cfg.WebhookAddr) })
	g.Go(func() error {
		for {
			select {
			case ev := <-session.Events():
				logger.Debug("main: dispatch event", "name", ev.Name)
				if ev.Name == "INTERACTION_CREATE" {
					handleInteraction(gctx, interactionAPI, logger, ev)
				}
			case <-gctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("main: fatal error", "error", err)
		session.Close()
		os.Exit(1)
	}
}

// defaultIntents is GUILDS | GUILD_MESSAGES | MESSAGE_CONTENT | GUILD_VOICE_STATES.
const defaultIntents = 1<<0 | 1<<9 | 1<<15 | 1<<7

// commands is the application's global command set, overwritten on every
// startup via RegisterCommands; handleInteraction below answers the one
// command registered here.
var commands = []structs.AppCmd{
	{
		Type:        structs.AppCmdTypeChatInput,
		Name:        "ping",
		Description: "Replies with pong.",
	},
}

// handleInteraction is a minimal slash-command responder kept as a
// reference wiring of internal/interactions: it answers the "ping"
// command and logs anything else unrecognized.
func handleInteraction(ctx context.Context, api *interactions.API, logger *slog.Logger, ev gateway.DispatchEvent) {
	var interaction structs.Interaction
	if err := json.Unmarshal(ev.Data, &interaction); err != nil {
		logger.Error("main: could not decode interaction", "error", err)
		return
	}
	if interaction.Type != structs.InteractionTypeApplicationCommand {
		return
	}
	if interaction.Data.Name != "ping" {
		logger.Warn("main: unknown command", "name", interaction.Data.Name)
		return
	}
	response := structs.InteractionResponse{
		Type: structs.InteractionResponseTypeChannelMessageWithSource,
		Data: structs.InteractionResponseDataMessage{Content: "pong"},
	}
	if err := api.Reply(ctx, interaction.ID, interaction.Token, response); err != nil {
		logger.Error("main: could not reply to interaction", "error", err)
	}
}

func levelFor(env string) slog.Level {
	if strings.EqualFold(env, "production") {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
