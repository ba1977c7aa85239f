package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetGatewaySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gateway/bot" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bot test-token" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Idempotency-Key") == "" {
			t.Error("expected an idempotency key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"wss://gateway.discord.gg","shards":1,"session_start_limit":{"total":1000,"remaining":999,"reset_after":60000,"max_concurrency":1}}`))
	}))
	defer srv.Close()

	r := New(srv.URL, "test-token")
	res, err := r.GetGateway(context.Background())
	if err != nil {
		t.Fatalf("GetGateway: %v", err)
	}
	if res.URL != "wss://gateway.discord.gg" {
		t.Fatalf("got url %q, want wss://gateway.discord.gg", res.URL)
	}
	if res.Shards != 1 {
		t.Fatalf("got shards %d, want 1", res.Shards)
	}
}

func TestGetGatewayErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"401: Unauthorized"}`))
	}))
	defer srv.Close()

	r := New(srv.URL, "bad-token")
	_, err := r.GetGateway(context.Background())
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}

func TestIdempotencyKeyVariesPerRequest(t *testing.T) {
	seen := make(map[string]bool)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("X-Idempotency-Key")] = true
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := New(srv.URL, "test-token")
	for i := 0; i < 3; i++ {
		res, err := r.Get(context.Background(), "/whatever", nil, nil)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		res.Body.Close()
	}
	if len(seen) != 3 {
		t.Fatalf("got %d distinct idempotency keys, want 3", len(seen))
	}
}
