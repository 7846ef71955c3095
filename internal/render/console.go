package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"histfetch/internal/history"
)

const summaryHeadRows = 5

// Summary prints a short overview of ds: the first few bars, the row
// count, and the covered date range.
func Summary(w io.Writer, ds *history.Dataset) {
	fmt.Fprintf(w, "\nData for %s (%s):\n", ds.Symbol, ds.Interval)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tOpen\tHigh\tLow\tClose\tAdj Close\tVolume")
	head := len(ds.Bars)
	if head > summaryHeadRows {
		head = summaryHeadRows
	}
	for i := 0; i < head; i++ {
		b := &ds.Bars[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			formatTimestamp(b.Timestamp, ds.Interval),
			b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nRows: %d\n", len(ds.Bars))
	if !ds.Empty() {
		first, last := ds.Range()
		fmt.Fprintf(w, "Date range: %s to %s\n",
			formatTimestamp(first, ds.Interval), formatTimestamp(last, ds.Interval))
	}
}
