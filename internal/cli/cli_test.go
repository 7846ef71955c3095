package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"histfetch/internal/history"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMarketsCmd_ListMarkets(t *testing.T) {
	out, err := execute(t, "markets")
	if err != nil {
		t.Fatalf("markets command returned unexpected error: %v", err)
	}

	for _, name := range []string{"crypto", "stocks", "forex", "indices", "commodities"} {
		if !strings.Contains(out, name) {
			t.Errorf("markets listing missing %q, got:\n%s", name, out)
		}
	}
}

func TestMarketsCmd_ListTickers(t *testing.T) {
	out, err := execute(t, "markets", "crypto")
	if err != nil {
		t.Fatalf("markets crypto returned unexpected error: %v", err)
	}

	if !strings.Contains(out, "BTC-USD") {
		t.Errorf("crypto listing missing BTC-USD, got:\n%s", out)
	}
}

func TestMarketsCmd_Unknown(t *testing.T) {
	if _, err := execute(t, "markets", "derivatives"); err == nil {
		t.Error("unknown market expected error, got nil")
	}
}

func TestRootCmd_RequiresTicker(t *testing.T) {
	if _, err := execute(t); err == nil {
		t.Error("root command without arguments expected error, got nil")
	}
}

func TestRootCmd_RejectsBadDates(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"bad start", []string{"AAPL", "-s", "01/01/2023"}},
		{"bad end", []string{"AAPL", "-e", "not-a-date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error for malformed date, got nil")
			}
		})
	}
}

func TestBuildRequests(t *testing.T) {
	requests, err := buildRequests([]string{"AAPL", "MSFT"}, "1d", "2023-01-01", "2023-06-30")
	if err != nil {
		t.Fatalf("buildRequests() returned unexpected error: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("buildRequests() returned %d requests, want 2", len(requests))
	}
	if requests[0].Symbol != "AAPL" || requests[1].Symbol != "MSFT" {
		t.Errorf("symbols = %q, %q", requests[0].Symbol, requests[1].Symbol)
	}
	if requests[0].Interval != history.Interval1d {
		t.Errorf("interval = %q, want 1d", requests[0].Interval)
	}
	if requests[0].Start == nil || requests[0].End == nil {
		t.Fatal("dates not parsed")
	}
	if requests[0].Start.Format("2006-01-02") != "2023-01-01" {
		t.Errorf("start = %v", requests[0].Start)
	}
}

func TestBuildRequests_NoDates(t *testing.T) {
	requests, err := buildRequests([]string{"BTC-USD"}, "1h", "", "")
	if err != nil {
		t.Fatalf("buildRequests() returned unexpected error: %v", err)
	}
	if requests[0].Start != nil || requests[0].End != nil {
		t.Error("absent flags should leave dates nil for default lookback")
	}
}
