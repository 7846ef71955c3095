// Package cli wires the cobra command surface over the fetch pipeline.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"histfetch/internal/batch"
	"histfetch/internal/cache"
	"histfetch/internal/config"
	"histfetch/internal/fetch"
	"histfetch/internal/history"
	"histfetch/internal/logging"
	"histfetch/internal/ratelimit"
	"histfetch/internal/yahoo"
)

const dateLayout = "2006-01-02"

// NewRootCmd creates the root command:
//
//	histfetch AAPL                     # daily Apple history
//	histfetch BTC-USD -i 1h            # hourly Bitcoin history
//	histfetch MSFT -s 2023-01-01 -e 2023-12-31
//	histfetch AAPL MSFT GOOGL          # batch, processed sequentially
func NewRootCmd(version string) *cobra.Command {
	var (
		intervalFlag string
		startFlag    string
		endFlag      string
	)

	cmd := &cobra.Command{
		Use:     "histfetch TICKER [TICKER...]",
		Short:   "Fetch historical market data from Yahoo Finance",
		Long:    "histfetch retrieves historical OHLCV data for stocks, crypto, forex,\nindices and commodities, caches datasets locally, and renders them to\nCSV files and a console summary.",
		Version: version,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			requests, err := buildRequests(args, intervalFlag, startFlag, endFlag)
			if err != nil {
				return err
			}

			logger := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)

			provider := yahoo.NewClient(cfg.YahooBaseURL, cfg.RequestTimeout)
			store := cache.NewStore(cfg.CacheDir, logger)
			policy := fetch.Policy{
				MaxAttempts: cfg.MaxAttempts,
				BaseDelay:   cfg.BaseDelay,
				Multiplier:  cfg.BackoffMultiplier,
				MaxDelay:    cfg.MaxDelay,
			}
			limiter := ratelimit.New(cfg.RequestsPerSecond, 1)
			fetcher := fetch.NewFetcher(provider, store, policy, limiter, logger)

			runner := batch.New(fetcher, cfg.OutputDir, cmd.OutOrStdout(), logger)
			_, err = runner.Run(cmd.Context(), requests)
			return err
		},
	}

	cmd.Flags().StringVarP(&intervalFlag, "interval", "i", "1d", "bar interval (1m 2m 5m 15m 30m 60m 90m 1h 1d 5d 1wk 1mo 3mo)")
	cmd.Flags().StringVarP(&startFlag, "start", "s", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&endFlag, "end", "e", "", "end date (YYYY-MM-DD)")
	cmd.SilenceUsage = true

	cmd.AddCommand(newMarketsCmd())

	return cmd
}

// buildRequests turns the CLI arguments into one request per ticker.
// Range validation proper happens in Request.Normalize; here only the
// date syntax is checked so a typo fails before any network setup.
func buildRequests(symbols []string, interval, start, end string) ([]history.Request, error) {
	var startTime, endTime *time.Time
	if start != "" {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q, use YYYY-MM-DD", start)
		}
		startTime = &t
	}
	if end != "" {
		t, err := time.Parse(dateLayout, end)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q, use YYYY-MM-DD", end)
		}
		endTime = &t
	}

	requests := make([]history.Request, 0, len(symbols))
	for _, symbol := range symbols {
		requests = append(requests, history.Request{
			Symbol:   symbol,
			Interval: history.Interval(interval),
			Start:    startTime,
			End:      endTime,
		})
	}
	return requests, nil
}

