// Package batch runs a list of fetch requests one after another and
// renders each result. A failed ticker is reported and the batch moves on
// to the next one; backoff waits for one ticker finish before the next
// ticker starts.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"histfetch/internal/fetch"
	"histfetch/internal/history"
	"histfetch/internal/render"
)

// Result is the outcome of one request in a batch.
type Result struct {
	// Symbol is the requested ticker symbol
	Symbol string

	// Dataset holds the fetched bars; nil when Err is set
	Dataset *history.Dataset

	// CSVPath is the rendered CSV file, empty when rendering was skipped
	CSVPath string

	// Err records why this ticker failed; the rest of the batch still ran
	Err error
}

// Runner drives a fetcher over a batch of requests.
type Runner struct {
	fetcher   *fetch.Fetcher
	outputDir string
	out       io.Writer
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a batch runner. Console output (summaries, per-ticker
// status) goes to out.
func New(fetcher *fetch.Fetcher, outputDir string, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		fetcher:   fetcher,
		outputDir: outputDir,
		out:       out,
		logger:    logger,
		now:       time.Now,
	}
}

// Run processes requests sequentially, rendering each successful dataset
// to CSV and a console summary. It returns all per-ticker results, and an
// error only when there was nothing to do or every single ticker failed.
// Context cancellation stops the batch between tickers.
func (r *Runner) Run(ctx context.Context, requests []history.Request) ([]Result, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("no tickers requested")
	}

	results := make([]Result, 0, len(requests))
	failed := 0

	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := Result{Symbol: req.Symbol}
		ds, err := r.fetcher.Fetch(ctx, req)
		if err != nil {
			res.Err = err
			failed++
			fmt.Fprintf(r.out, "%s: ERROR - %v\n", req.Symbol, err)
			r.logger.Error("fetch failed", "symbol", req.Symbol, "error", err)
			results = append(results, res)
			continue
		}

		res.Dataset = ds
		render.Summary(r.out, ds)

		path, err := render.WriteCSV(ds, r.outputDir, r.now())
		if err != nil {
			// Rendering is best-effort: the data was fetched fine
			r.logger.Warn("failed to write CSV", "symbol", req.Symbol, "error", err)
			fmt.Fprintf(r.out, "Warning: could not save CSV for %s: %v\n", req.Symbol, err)
		} else {
			res.CSVPath = path
			fmt.Fprintf(r.out, "Data saved to: %s\n", path)
		}

		results = append(results, res)
	}

	if failed == len(requests) {
		return results, fmt.Errorf("all %d tickers failed", failed)
	}
	return results, nil
}
