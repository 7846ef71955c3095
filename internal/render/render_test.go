package render

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"histfetch/internal/history"
	"histfetch/internal/testutil"
)

var renderNow = time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	ds := testutil.NewDataset("AAPL", history.Interval1d, 3)

	path, err := WriteCSV(ds, dir, renderNow)
	if err != nil {
		t.Fatalf("WriteCSV() returned unexpected error: %v", err)
	}

	if filepath.Base(path) != "AAPL_20240315_143045.csv" {
		t.Errorf("CSV filename = %q, want AAPL_20240315_143045.csv", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open written CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse written CSV: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("CSV holds %d rows, want header + 3 bars", len(rows))
	}

	wantHeader := []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header column %d = %q, want %q", i, rows[0][i], col)
		}
	}

	if rows[1][0] != "2023-01-02" {
		t.Errorf("first data row date = %q, want 2023-01-02", rows[1][0])
	}
	if rows[1][1] != "100" {
		t.Errorf("first data row open = %q, want 100", rows[1][1])
	}
	if rows[1][6] != "1000" {
		t.Errorf("first data row volume = %q, want 1000", rows[1][6])
	}
}

func TestWriteCSV_IntradayKeepsTime(t *testing.T) {
	dir := t.TempDir()
	ds := testutil.NewDataset("BTC-USD", history.Interval1h, 2)

	path, err := WriteCSV(ds, dir, renderNow)
	if err != nil {
		t.Fatalf("WriteCSV() returned unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written CSV: %v", err)
	}
	if !strings.Contains(string(raw), "2023-01-02 00:00:00") {
		t.Error("intraday CSV rows do not carry a time component")
	}
}

func TestWriteCSV_SanitizesSymbol(t *testing.T) {
	dir := t.TempDir()
	ds := testutil.NewDataset("^GSPC", history.Interval1d, 1)

	path, err := WriteCSV(ds, dir, renderNow)
	if err != nil {
		t.Fatalf("WriteCSV() returned unexpected error: %v", err)
	}
	if strings.ContainsAny(filepath.Base(path), "^=/\\") {
		t.Errorf("CSV filename %q contains unsafe characters", filepath.Base(path))
	}
}

func TestWriteCSV_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	ds := testutil.NewDataset("AAPL", history.Interval1d, 1)

	if _, err := WriteCSV(ds, dir, renderNow); err != nil {
		t.Fatalf("WriteCSV() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory missing after WriteCSV(): %v", err)
	}
}

func TestSummary(t *testing.T) {
	ds := testutil.NewDataset("AAPL", history.Interval1d, 8)

	var buf bytes.Buffer
	Summary(&buf, ds)
	out := buf.String()

	if !strings.Contains(out, "Data for AAPL (1d):") {
		t.Errorf("summary missing title, got:\n%s", out)
	}
	if !strings.Contains(out, "Rows: 8") {
		t.Errorf("summary missing row count, got:\n%s", out)
	}
	if !strings.Contains(out, "Date range: 2023-01-02 to 2023-01-09") {
		t.Errorf("summary missing date range, got:\n%s", out)
	}

	// Only the head is printed: the last bar's date appears in the range
	// line but not as a table row
	if strings.Count(out, "2023-01-09") != 1 {
		t.Errorf("summary should show the last date only in the range line, got:\n%s", out)
	}
}

func TestSummary_Empty(t *testing.T) {
	ds := &history.Dataset{Symbol: "AAPL", Interval: history.Interval1d}

	var buf bytes.Buffer
	Summary(&buf, ds)

	if !strings.Contains(buf.String(), "Rows: 0") {
		t.Errorf("summary of empty dataset missing row count, got:\n%s", buf.String())
	}
}
