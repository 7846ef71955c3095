// Package fetch implements the fetch-cache-retry pipeline: normalize the
// request, consult the on-disk cache, and on a miss call the remote
// provider under a bounded exponential-backoff retry policy.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"histfetch/internal/cache"
	"histfetch/internal/history"
	"histfetch/internal/ratelimit"
)

// Provider is the remote market-data boundary. Implementations translate
// their transport failures into this package's error taxonomy so the
// retry policy can classify them.
type Provider interface {
	// History retrieves historical bars for a normalized request.
	History(ctx context.Context, req history.Request) (*history.Dataset, error)
}

// Fetcher orchestrates a single fetch: fingerprint the request, serve from
// cache when possible, otherwise go remote with retries and store the
// result. All collaborators are injected at construction.
type Fetcher struct {
	provider Provider
	store    *cache.Store
	policy   Policy
	limiter  *ratelimit.Limiter
	logger   *slog.Logger
	now      func() time.Time
}

// NewFetcher wires up a fetcher. The limiter may be nil when no rate
// limiting is wanted; a nil logger falls back to slog.Default.
func NewFetcher(provider Provider, store *cache.Store, policy Policy, limiter *ratelimit.Limiter, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		provider: provider,
		store:    store,
		policy:   policy,
		limiter:  limiter,
		logger:   logger,
		now:      time.Now,
	}
}

// Fetch returns the dataset for req, from cache when an entry exists for
// the normalized request, otherwise from the provider. A fresh fetch is
// cached best-effort: a cache write failure is logged and the dataset is
// still returned. Errors are InvalidRequestError for requests that can
// never succeed and FetchFailedError once retries are exhausted.
func (f *Fetcher) Fetch(ctx context.Context, req history.Request) (*history.Dataset, error) {
	norm, err := req.Normalize(f.now())
	if err != nil {
		return nil, &InvalidRequestError{Err: err}
	}

	key := cache.Key(norm)
	if ds, ok := f.store.Get(key); ok {
		f.logger.Debug("serving from cache", "symbol", norm.Symbol, "interval", norm.Interval, "key", key)
		return ds, nil
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	f.logger.Debug("cache miss, fetching remote",
		"symbol", norm.Symbol, "interval", norm.Interval,
		"start", norm.Start.Format("2006-01-02"), "end", norm.End.Format("2006-01-02"))

	ds, err := f.policy.Execute(ctx, func() (*history.Dataset, error) {
		return f.provider.History(ctx, norm)
	})
	if err != nil {
		return nil, err
	}

	ds.Sort()
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("provider returned invalid dataset for %s: %w", norm.Symbol, err)
	}

	if err := f.store.Put(key, ds); err != nil {
		f.logger.Warn("cache write failed, returning dataset anyway", "key", key, "error", err)
	}

	return ds, nil
}
