// Package ratelimit provides a simple fixed-window limiter for the REST
// sideband the gateway session issues requests through (interaction
// callbacks, original-response fetch/delete, the gateway bootstrap call).
// Gateway frame traffic itself is never throttled here: §1 of the spec
// scopes REST rate-limit bookkeeping out of the core entirely.
package ratelimit

import (
	"context"
	"time"

	"github.com/sasha-s/go-csync"
)

type Limiter struct {
	mu csync.Mutex

	reset     time.Time
	remaining int

	requestsPerWindow int
	window            time.Duration
}

type Opt func(*Limiter)

func WithRequestsPerWindow(n int) Opt {
	return func(l *Limiter) { l.requestsPerWindow = n }
}

func WithWindow(d time.Duration) Opt {
	return func(l *Limiter) { l.window = d }
}

func New(opts ...Opt) *Limiter {
	l := &Limiter{
		requestsPerWindow: 50,
		window:            time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until a request slot is available, or ctx is done. Callers
// must follow a successful Wait with Release once the request has been
// issued, which folds the outcome back into the window bookkeeping.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.mu.CLock(ctx); err != nil {
		return err
	}

	now := time.Now()
	var until time.Time
	if l.remaining == 0 && l.reset.After(now) {
		until = l.reset
	}

	if until.After(now) {
		select {
		case <-ctx.Done():
			l.mu.Unlock()
			return ctx.Err()
		case <-time.After(until.Sub(now)):
		}
	}
	return nil
}

// Release is called once per successful Wait, after the request completes.
func (l *Limiter) Release() {
	now := time.Now()
	if l.reset.Before(now) {
		l.reset = now.Add(l.window)
		l.remaining = l.requestsPerWindow
	}
	if l.remaining > 0 {
		l.remaining--
	}
	l.mu.Unlock()
}

// Reset clears any accumulated window state, used when a REST client is
// reused across reconnects.
func (l *Limiter) Reset() {
	l.reset = time.Time{}
	l.remaining = 0
	l.mu = csync.Mutex{}
}

// Close acquires the limiter's lock, waiting for the current holder to
// Release, and never releases it: no later Wait is granted a slot, and a
// Wait blocked behind it returns only once its own ctx is done. If ctx is
// done before the lock is acquired, Close returns and the limiter keeps
// working.
func (l *Limiter) Close(ctx context.Context) {
	_ = l.mu.CLock(ctx)
}
