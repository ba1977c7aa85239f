// Package webhook serves the HTTP-delivered half of the interaction
// surface: Discord's outgoing webhook for interactions, guarded by the
// ed25519 request-signing scheme described in Discord's developer docs.
// Verified interactions are decoded and forwarded onto the same
// DispatchEvent-shaped channel the gateway session publishes to, so a
// consumer can treat both delivery paths identically.
package webhook

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"

	"github.com/gofiber/fiber/v3"
)

// VerifyKeyMiddleware checks the X-Signature-Ed25519/X-Signature-Timestamp
// headers against the application's public key. Requests that fail
// verification never reach the route handler.
func VerifyKeyMiddleware(publicKeyHex string) fiber.Handler {
	pubKey, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		panic("webhook: invalid public key: " + err.Error())
	}
	return func(c fiber.Ctx) error {
		body := c.BodyRaw()
		headers := c.GetReqHeaders()

		timestamp, ok := headers["X-Signature-Timestamp"]
		if !ok || len(timestamp) == 0 {
			return c.Status(fiber.StatusUnauthorized).SendString("missing timestamp signature")
		}
		signature, ok := headers["X-Signature-Ed25519"]
		if !ok || len(signature) == 0 {
			return c.Status(fiber.StatusUnauthorized).SendString("missing ed25519 signature")
		}

		sig, err := hex.DecodeString(signature[0])
		if err != nil || len(sig) != ed25519.SignatureSize {
			return c.Status(fiber.StatusUnauthorized).SendString("malformed signature")
		}

		message := bytes.Join([][]byte{[]byte(timestamp[0]), body}, nil)
		if !ed25519.Verify(ed25519.PublicKey(pubKey), message, sig) {
			return c.Status(fiber.StatusUnauthorized).SendString("invalid request signature")
		}
		return c.Next()
	}
}

// PingRequestMiddleware answers Discord's periodic PING interaction
// (type 1) directly, without handing it to the route handler.
func PingRequestMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		var probe struct {
			Type int `json:"type"`
		}
		if err := c.Bind().JSON(&probe); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("malformed interaction payload")
		}
		if probe.Type == 1 {
			return c.JSON(fiber.Map{"type": 1})
		}
		return c.Next()
	}
}
