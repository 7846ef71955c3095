package history

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is a single OHLCV row. Prices are decimals to avoid float drift when
// bars round-trip through the cache and out to CSV.
type Bar struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
}

// ValidationError reports which bar field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid bar field %s: %s", e.Field, e.Message)
}

// Validate checks the internal consistency of the bar: prices positive,
// volume non-negative, and the OHLC relationships hold
// (high >= max(open, close), low <= min(open, close)).
func (b *Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "timestamp cannot be zero"}
	}

	zero := decimal.Zero
	if b.Open.LessThanOrEqual(zero) {
		return &ValidationError{Field: "open", Message: "open price must be greater than 0"}
	}
	if b.High.LessThanOrEqual(zero) {
		return &ValidationError{Field: "high", Message: "high price must be greater than 0"}
	}
	if b.Low.LessThanOrEqual(zero) {
		return &ValidationError{Field: "low", Message: "low price must be greater than 0"}
	}
	if b.Close.LessThanOrEqual(zero) {
		return &ValidationError{Field: "close", Message: "close price must be greater than 0"}
	}
	if b.Volume < 0 {
		return &ValidationError{Field: "volume", Message: "volume must be greater than or equal to 0"}
	}

	maxOpenClose := decimal.Max(b.Open, b.Close)
	if b.High.LessThan(maxOpenClose) {
		return &ValidationError{
			Field:   "high",
			Message: fmt.Sprintf("high (%s) below max(open, close) (%s)", b.High, maxOpenClose),
		}
	}

	minOpenClose := decimal.Min(b.Open, b.Close)
	if b.Low.GreaterThan(minOpenClose) {
		return &ValidationError{
			Field:   "low",
			Message: fmt.Sprintf("low (%s) above min(open, close) (%s)", b.Low, minOpenClose),
		}
	}

	return nil
}
