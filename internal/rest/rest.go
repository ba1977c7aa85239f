// Package rest is the one-shot HTTPS collaborator the gateway session
// depends on to bootstrap (fetch the Gateway URL) and to issue sideband
// requests (interaction callbacks, voice/guild-member follow-ups). It is
// deliberately thin: full REST coverage (channels, messages, reactions) is
// out of scope for this module, per §1 of the spec.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/hendrywilliam/siren/internal/ratelimit"
)

type REST struct {
	httpClient *http.Client
	botToken   string
	baseURL    string
	limiter    *ratelimit.Limiter
}

type Options struct {
	Headers map[string]string
}

func New(baseURL, botToken string) *REST {
	return &REST{
		httpClient: http.DefaultClient,
		botToken:   botToken,
		baseURL:    baseURL,
		limiter:    ratelimit.New(),
	}
}

func (r *REST) applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

func (r *REST) makeRequest(ctx context.Context, method, path string, body io.Reader, options *Options) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Authorization", fmt.Sprintf("Bot %s", r.botToken))
	// Every request gets a fresh idempotency key; a request issued again
	// through another call carries a new key, not the earlier one.
	req.Header.Set("X-Idempotency-Key", uuid.NewString())
	if options != nil {
		r.applyHeaders(req, options.Headers)
	}
	return req, nil
}

func (r *REST) do(ctx context.Context, method, path string, body io.Reader, options *Options) (*http.Response, error) {
	req, err := r.makeRequest(ctx, method, path, body, options)
	if err != nil {
		return nil, err
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	defer r.limiter.Release()
	return r.httpClient.Do(req)
}

func (r *REST) Get(ctx context.Context, path string, body io.Reader, options *Options) (*http.Response, error) {
	return r.do(ctx, http.MethodGet, path, body, options)
}

func (r *REST) Put(ctx context.Context, path string, body io.Reader, options *Options) (*http.Response, error) {
	return r.do(ctx, http.MethodPut, path, body, options)
}

func (r *REST) Patch(ctx context.Context, path string, body io.Reader, options *Options) (*http.Response, error) {
	return r.do(ctx, http.MethodPatch, path, body, options)
}

func (r *REST) Delete(ctx context.Context, path string, body io.Reader, options *Options) (*http.Response, error) {
	return r.do(ctx, http.MethodDelete, path, body, options)
}

func (r *REST) Post(ctx context.Context, path string, body io.Reader, options *Options) (*http.Response, error) {
	return r.do(ctx, http.MethodPost, path, body, options)
}

// GatewayBotResponse is the body of GET /gateway/bot: the bootstrap call the
// gateway session engine makes before dialing.
type GatewayBotResponse struct {
	URL               string `json:"url"`
	Shards            int    `json:"shards"`
	SessionStartLimit struct {
		Total          int `json:"total"`
		Remaining      int `json:"remaining"`
		ResetAfter     int `json:"reset_after"`
		MaxConcurrency int `json:"max_concurrency"`
	} `json:"session_start_limit"`
}

// GetGateway fetches the recommended Gateway URL, per §6 of the spec.
func (r *REST) GetGateway(ctx context.Context) (*GatewayBotResponse, error) {
	res, err := r.Get(ctx, "/gateway/bot", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("rest: get gateway: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("rest: get gateway: status %d: %s", res.StatusCode, string(body))
	}
	var out GatewayBotResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("rest: decode gateway response: %w", err)
	}
	return &out, nil
}

// PostJSON is a convenience wrapper for the common case of posting a JSON
// body and expecting a JSON or empty response.
func (r *REST) PostJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("rest: encode body: %w", err)
	}
	return r.Post(ctx, path, buf, nil)
}
