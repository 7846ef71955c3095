// Package yahoo implements the remote provider boundary against Yahoo
// Finance's chart API.
package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"resty.dev/v3"

	"histfetch/internal/fetch"
	"histfetch/internal/history"
)

const chartPath = "/v8/finance/chart/{symbol}"

// chartResponse mirrors the chart endpoint's JSON envelope. Quote arrays
// use pointers because Yahoo emits null placeholders for sessions with no
// trades.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Client fetches historical bars from the chart API. Retrying is the
// caller's job; the underlying HTTP client performs single attempts only.
type Client struct {
	client *resty.Client
}

// NewClient creates a chart API client against baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "histfetch/1.0").
		SetTimeout(timeout)

	return &Client{client: client}
}

// History implements fetch.Provider. Transport and status failures are
// mapped into the fetch error taxonomy so the retry policy can tell
// transient failures from permanent ones.
func (c *Client) History(ctx context.Context, req history.Request) (*history.Dataset, error) {
	var out chartResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", req.Symbol).
		SetQueryParams(map[string]string{
			"period1":              strconv.FormatInt(req.Start.Unix(), 10),
			"period2":              strconv.FormatInt(req.End.AddDate(0, 0, 1).Unix(), 10),
			"interval":             req.Interval.String(),
			"events":               "div,splits",
			"includeAdjustedClose": "true",
		}).
		SetResult(&out).
		Get(chartPath)

	if err != nil {
		return nil, fetch.ClassifyTransportError(err)
	}

	if !resp.IsSuccess() {
		return nil, fetch.ClassifyHTTPStatus(resp.StatusCode(), resp.Status())
	}

	if out.Chart.Error != nil {
		return nil, &fetch.InvalidRequestError{
			Err: fmt.Errorf("provider rejected %s: %s (%s)", req.Symbol, out.Chart.Error.Description, out.Chart.Error.Code),
		}
	}

	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &fetch.InvalidRequestError{
			Err: fmt.Errorf("no data returned for symbol %s", req.Symbol),
		}
	}

	return buildDataset(req, &out.Chart.Result[0])
}

// buildDataset converts the chart API's column-oriented arrays into bars.
// Rows where any OHLC value is null are skipped; a missing adjusted close
// falls back to the raw close.
func buildDataset(req history.Request, result *chartResult) (*history.Dataset, error) {
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]history.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		bar := history.Bar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      decimal.NewFromFloat(*quote.Open[i]),
			High:      decimal.NewFromFloat(*quote.High[i]),
			Low:       decimal.NewFromFloat(*quote.Low[i]),
			Close:     decimal.NewFromFloat(*quote.Close[i]),
		}
		if i < len(adj) && adj[i] != nil {
			bar.AdjClose = decimal.NewFromFloat(*adj[i])
		} else {
			bar.AdjClose = bar.Close
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return &history.Dataset{
		Symbol:    req.Symbol,
		Interval:  req.Interval,
		Bars:      bars,
		FetchedAt: time.Now().UTC(),
	}, nil
}
