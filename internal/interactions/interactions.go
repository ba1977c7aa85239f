// Package interactions is the REST-side half of the interaction surface:
// replying to and managing an interaction's original response. Decoding
// and dispatching incoming interactions is handled by internal/webhook
// (HTTP-delivered) and the gateway's INTERACTION_CREATE dispatch
// (gateway-delivered); both paths end up calling into this package to
// respond.
package interactions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hendrywilliam/siren/internal/rest"
	"github.com/hendrywilliam/siren/internal/structs"
)

type API struct {
	rest          *rest.REST
	applicationID string
}

func New(restClient *rest.REST, applicationID string) *API {
	return &API{rest: restClient, applicationID: applicationID}
}

// Reply answers an interaction within Discord's response window by
// POSTing the callback payload to /interactions/{id}/{token}/callback.
func (a *API) Reply(ctx context.Context, interactionID, interactionToken string, response structs.InteractionResponse) error {
	path := fmt.Sprintf("/interactions/%s/%s/callback", interactionID, interactionToken)
	res, err := a.rest.PostJSON(ctx, path, response)
	if err != nil {
		return fmt.Errorf("interactions: reply: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("interactions: reply: status %d: %s", res.StatusCode, string(body))
	}
	return nil
}

// GetOriginal fetches the original response message for an interaction.
func (a *API) GetOriginal(ctx context.Context, interactionToken string) (*structs.Message, error) {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", a.applicationID, interactionToken)
	res, err := a.rest.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("interactions: get original: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("interactions: get original: status %d: %s", res.StatusCode, string(body))
	}
	var msg structs.Message
	if err := json.NewDecoder(res.Body).Decode(&msg); err != nil {
		return nil, fmt.Errorf("interactions: decode original: %w", err)
	}
	return &msg, nil
}

// EditOriginal edits the original response message for an interaction.
func (a *API) EditOriginal(ctx context.Context, interactionToken string, edit structs.InteractionResponseDataMessage) error {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", a.applicationID, interactionToken)
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(edit); err != nil {
		return fmt.Errorf("interactions: encode edit: %w", err)
	}
	res, err := a.rest.Patch(ctx, path, buf, nil)
	if err != nil {
		return fmt.Errorf("interactions: edit original: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("interactions: edit original: status %d: %s", res.StatusCode, string(body))
	}
	return nil
}

// DeleteOriginal deletes the original response message for an interaction.
func (a *API) DeleteOriginal(ctx context.Context, interactionToken string) error {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", a.applicationID, interactionToken)
	res, err := a.rest.Delete(ctx, path, nil, nil)
	if err != nil {
		return fmt.Errorf("interactions: delete original: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("interactions: delete original: status %d: %s", res.StatusCode, string(body))
	}
	return nil
}

// RegisterCommands overwrites the application's global command set via
// PUT /applications/{id}/commands.
func (a *API) RegisterCommands(ctx context.Context, cmds []structs.AppCmd) error {
	path := fmt.Sprintf("/applications/%s/commands", a.applicationID)
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(cmds); err != nil {
		return fmt.Errorf("interactions: encode commands: %w", err)
	}
	res, err := a.rest.Put(ctx, path, buf, nil)
	if err != nil {
		return fmt.Errorf("interactions: register commands: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("interactions: register commands: status %d: %s", res.StatusCode, string(body))
	}
	return nil
}
