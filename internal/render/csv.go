// Package render writes fetched datasets to CSV files and prints console
// summaries.
package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"histfetch/internal/history"
)

var csvHeader = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// WriteCSV writes ds to dir as {SYMBOL}_{timestamp}.csv and returns the
// path of the written file. The directory is created if missing.
func WriteCSV(ds *history.Dataset, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_%s.csv", fileSafe(ds.Symbol), now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range ds.Bars {
		b := &ds.Bars[i]
		row := []string{
			formatTimestamp(b.Timestamp, ds.Interval),
			b.Open.String(),
			b.High.String(),
			b.Low.String(),
			b.Close.String(),
			b.AdjClose.String(),
			strconv.FormatInt(b.Volume, 10),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close CSV file: %w", err)
	}

	return path, nil
}

// formatTimestamp keeps daily and coarser data readable as plain dates
// while intraday data keeps the time component.
func formatTimestamp(t time.Time, interval history.Interval) string {
	if interval.Intraday() {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02")
}

// fileSafe maps filesystem-hostile symbol characters ("^GSPC", "GC=F") to
// underscores.
func fileSafe(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, symbol)
}
