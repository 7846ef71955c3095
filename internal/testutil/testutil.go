// Package testutil provides shared fakes and fixtures for tests.
package testutil

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"histfetch/internal/history"
)

// MockProvider is a test double for the remote provider boundary. It
// counts calls so tests can assert how many remote fetches happened.
type MockProvider struct {
	HistoryFunc func(ctx context.Context, req history.Request) (*history.Dataset, error)
	Calls       int
}

// History implements fetch.Provider.
func (m *MockProvider) History(ctx context.Context, req history.Request) (*history.Dataset, error) {
	m.Calls++
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, req)
	}
	return NewDataset(req.Symbol, req.Interval, 3), nil
}

// NewDataset builds a valid dataset with n daily-spaced bars starting at a
// fixed date, with strictly increasing timestamps and consistent OHLC.
func NewDataset(symbol string, interval history.Interval, n int) *history.Dataset {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]history.Bar, 0, n)
	for i := 0; i < n; i++ {
		open := decimal.NewFromInt(int64(100 + i))
		close := open.Add(decimal.NewFromInt(1))
		bars = append(bars, history.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      open,
			High:      close.Add(decimal.NewFromInt(1)),
			Low:       open.Sub(decimal.NewFromInt(1)),
			Close:     close,
			AdjClose:  close,
			Volume:    1000 + int64(i),
		})
	}
	return &history.Dataset{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: base,
	}
}
