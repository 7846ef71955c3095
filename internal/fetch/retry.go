package fetch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"histfetch/internal/history"
)

const (
	minBaseDelay      = 100 * time.Millisecond
	defaultMultiplier = 2.0
)

// Policy bounds the retry loop around a single remote fetch. The wait
// before retry n is BaseDelay * Multiplier^n, capped at MaxDelay.
// MaxAttempts counts total attempts: 3 means one initial try plus up to
// two retries, and 0 (or less) means a single attempt with no retries.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultPolicy mirrors the historical defaults of the tool: up to five
// attempts starting at a three second delay.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   3 * time.Second,
		Multiplier:  defaultMultiplier,
		MaxDelay:    60 * time.Second,
	}
}

// normalized clamps nonsense settings to safe values rather than failing:
// non-positive delays get a floor, a multiplier below 1 would shrink the
// wait and is reset to the default.
func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = minBaseDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = defaultMultiplier
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

// Execute runs op, retrying transient failures with exponential backoff
// until it succeeds, a permanent error occurs, the context is done, or
// MaxAttempts is exhausted. A permanent error is returned as-is after a
// single attempt; exhaustion returns a FetchFailedError wrapping the last
// transient error.
func (p Policy) Execute(ctx context.Context, op func() (*history.Dataset, error)) (*history.Dataset, error) {
	p = p.normalized()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.BaseDelay
	bo.Multiplier = p.Multiplier
	bo.MaxInterval = p.MaxDelay
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	attempts := 0
	wrapped := func() (*history.Dataset, error) {
		attempts++
		ds, err := op()
		if err == nil {
			return ds, nil
		}
		if IsTransient(err) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	ds, err := backoff.RetryWithData(wrapped,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(p.MaxAttempts-1)), ctx))
	if err != nil {
		if IsTransient(err) {
			return nil, &FetchFailedError{Attempts: attempts, Err: err}
		}
		return nil, err
	}
	return ds, nil
}
