// Package cache persists fetched datasets on disk, one JSON file per
// request fingerprint. Entries have no TTL: a cache hit is served as-is,
// and re-fetching the same fingerprint overwrites the previous entry.
package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"histfetch/internal/history"
)

// Key derives the cache fingerprint for a normalized request. The key is a
// readable stem of symbol, interval and date range plus a short sha256
// suffix, so symbols with filesystem-hostile characters ("^GSPC",
// "EURUSD=X") still map to safe, collision-resistant file names.
// Identical normalized requests always yield identical keys.
func Key(req history.Request) string {
	start, end := "none", "none"
	if req.Start != nil {
		start = req.Start.UTC().Format("2006-01-02")
	}
	if req.End != nil {
		end = req.End.UTC().Format("2006-01-02")
	}

	stem := fmt.Sprintf("%s_%s_%s_%s", req.Symbol, req.Interval, start, end)
	sum := sha256.Sum256([]byte(stem))
	return fmt.Sprintf("%s_%x", sanitize(stem), sum[:6])
}

// sanitize maps anything outside [A-Za-z0-9._-] to '-'.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '-'
		}
	}, s)
}
