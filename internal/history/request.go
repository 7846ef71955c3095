package history

import (
	"fmt"
	"strings"
	"time"
)

// Request describes one historical data fetch: which symbol, at which
// granularity, over which date range. Either both Start and End are set,
// or neither is; a nil pair means "default lookback for the interval".
type Request struct {
	Symbol   string
	Interval Interval
	Start    *time.Time
	End      *time.Time
}

// Normalize validates the request and returns a canonical copy: symbol
// trimmed and uppercased, interval checked against the supported set,
// dates truncated to UTC midnight, and an absent range resolved to the
// interval's default lookback window ending at now. The receiver is not
// modified. Two requests that normalize to the same fields always produce
// the same cache key downstream.
func (r Request) Normalize(now time.Time) (Request, error) {
	symbol := strings.ToUpper(strings.TrimSpace(r.Symbol))
	if symbol == "" {
		return Request{}, fmt.Errorf("symbol cannot be empty")
	}
	if strings.ContainsAny(symbol, " \t/\\") {
		return Request{}, fmt.Errorf("malformed symbol %q", symbol)
	}

	interval, err := ParseInterval(string(r.Interval))
	if err != nil {
		return Request{}, err
	}

	if (r.Start == nil) != (r.End == nil) {
		return Request{}, fmt.Errorf("start and end dates must be provided together")
	}

	var start, end time.Time
	if r.Start != nil {
		start = midnightUTC(*r.Start)
		end = midnightUTC(*r.End)
		if start.After(end) {
			return Request{}, fmt.Errorf("start date %s is after end date %s",
				start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
	} else {
		end = midnightUTC(now)
		start = end.Add(-interval.DefaultLookback())
	}

	return Request{
		Symbol:   symbol,
		Interval: interval,
		Start:    &start,
		End:      &end,
	}, nil
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
