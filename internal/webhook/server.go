package webhook

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/hendrywilliam/siren/internal/structs"
)

// Sink is the destination for decoded, verified interactions. The
// gateway session's DispatchEvent stream satisfies the same shape
// conceptually; Server just needs somewhere to push one.
type Sink interface {
	PublishInteraction(structs.Interaction)
}

type Server struct {
	router *fiber.App
	sink   Sink
	logger *slog.Logger
}

type Options struct {
	PublicKeyHex string
	Sink         Sink
	Logger       *slog.Logger
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{sink: opts.Sink, logger: opts.Logger}
	s.router = s.buildRouter(opts.PublicKeyHex)
	return s
}

func (s *Server) buildRouter(publicKeyHex string) *fiber.App {
	router := fiber.New()
	router.Use("/interactions", VerifyKeyMiddleware(publicKeyHex))
	router.Use("/interactions", PingRequestMiddleware())
	router.Post("/interactions", s.handleInteraction)
	return router
}

func (s *Server) handleInteraction(c fiber.Ctx) error {
	var interaction structs.Interaction
	if err := c.Bind().JSON(&interaction); err != nil {
		s.logger.Error("webhook: malformed interaction payload", "error", err)
		return c.Status(http.StatusBadRequest).SendString("malformed interaction payload")
	}

	if s.sink != nil {
		s.sink.PublishInteraction(interaction)
	}

	// Discord expects a response within three seconds, so every verified
	// interaction is answered here with a deferred channel-message
	// response; the message itself can then be set through
	// internal/interactions.EditOriginal.
	return c.JSON(structs.InteractionResponse{
		Type: structs.InteractionResponseTypeDeferredChannelMessageWithSource,
	})
}

// Listen starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	s.logger.Info("webhook: listening", "addr", addr)
	return s.router.Listen(addr, fiber.ListenConfig{
		GracefulContext: ctx,
		OnShutdownSuccess: func() {
			s.logger.Info("webhook: stopped")
		},
	})
}
