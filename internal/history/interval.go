// Package history defines the core data model for historical market data:
// intervals, OHLCV bars, datasets, and fetch requests.
package history

import (
	"fmt"
	"time"
)

// Interval is a supported bar granularity. The set mirrors what Yahoo
// Finance's chart endpoint accepts.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval2m  Interval = "2m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval60m Interval = "60m"
	Interval90m Interval = "90m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
	Interval5d  Interval = "5d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
	Interval3mo Interval = "3mo"
)

// Intervals lists every supported interval in ascending granularity order.
var Intervals = []Interval{
	Interval1m, Interval2m, Interval5m, Interval15m, Interval30m,
	Interval60m, Interval90m, Interval1h,
	Interval1d, Interval5d, Interval1wk, Interval1mo, Interval3mo,
}

// ParseInterval validates s against the supported set.
func ParseInterval(s string) (Interval, error) {
	for _, iv := range Intervals {
		if Interval(s) == iv {
			return iv, nil
		}
	}
	return "", fmt.Errorf("unsupported interval %q (supported: %v)", s, Intervals)
}

// String implements fmt.Stringer.
func (i Interval) String() string {
	return string(i)
}

// Intraday reports whether the interval is finer than one day.
func (i Interval) Intraday() bool {
	switch i {
	case Interval1m, Interval2m, Interval5m, Interval15m, Interval30m,
		Interval60m, Interval90m, Interval1h:
		return true
	}
	return false
}

// DefaultLookback returns the default window length used when a request
// carries no explicit date range. Intraday intervals are capped to what
// Yahoo actually serves; daily and coarser get a long window.
func (i Interval) DefaultLookback() time.Duration {
	const day = 24 * time.Hour
	switch i {
	case Interval1m:
		return 7 * day
	case Interval2m, Interval5m, Interval15m, Interval30m, Interval90m:
		return 60 * day
	case Interval60m, Interval1h:
		return 730 * day
	default:
		return 10 * 365 * day
	}
}
