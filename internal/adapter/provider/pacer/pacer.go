// Package pacer throttles outbound dictionary lookups with a token bucket.
package pacer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

type dictionary interface {
	Name() string
	Lookup(ctx context.Context, word string) (*provider.LookupResult, error)
}

// Dictionary wraps a lookup client so that calls to the remote service never
// exceed rps requests per second, with bursts of up to burst requests.
type Dictionary struct {
	next    dictionary
	limiter *rate.Limiter
	log     *slog.Logger
}

// New wraps next. A non-positive rps disables pacing; burst below 1 is
// raised to 1.
func New(next dictionary, rps float64, burst int, logger *slog.Logger) *Dictionary {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Dictionary{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		log:     logger.With("adapter", "pacer", "provider", next.Name()),
	}
}

// Name returns the wrapped provider's name.
func (d *Dictionary) Name() string { return d.next.Name() }

// errNoToken is returned when a reservation can never be satisfied.
var errNoToken = errors.New("pacer: no token available")

// Lookup waits for a token and delegates to the wrapped client. Waiting ends
// only when the token arrives or ctx is done; a token due after the ctx
// deadline is still waited for, so the caller sees the deadline itself and
// not an early failure. The wrapped client is not called when ctx ends first.
func (d *Dictionary) Lookup(ctx context.Context, word string) (*provider.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pacer: %w", err)
	}

	r := d.limiter.Reserve()
	if !r.OK() {
		return nil, errNoToken
	}

	if delay := r.Delay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			r.Cancel()
			d.log.DebugContext(ctx, "lookup not paced",
				slog.String("word", word),
				slog.Duration("delay", delay),
				slog.String("error", ctx.Err().Error()),
			)
			return nil, fmt.Errorf("pacer: %w", ctx.Err())
		}
	}

	return d.next.Lookup(ctx, word)
}
