package history

import (
	"fmt"
	"sort"
	"time"
)

// Dataset is an ordered series of bars for one symbol at one interval.
// Bars are ordered by timestamp ascending with no duplicates; Validate
// enforces that invariant.
type Dataset struct {
	Symbol    string    `json:"symbol"`
	Interval  Interval  `json:"interval"`
	Bars      []Bar     `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Sort orders bars by timestamp ascending. Providers occasionally return
// rows out of order; callers sort before validating.
func (d *Dataset) Sort() {
	sort.Slice(d.Bars, func(i, j int) bool {
		return d.Bars[i].Timestamp.Before(d.Bars[j].Timestamp)
	})
}

// Validate checks that the dataset is non-degenerate and that bar
// timestamps are strictly increasing (which also rules out duplicates).
func (d *Dataset) Validate() error {
	if d.Symbol == "" {
		return fmt.Errorf("dataset symbol cannot be empty")
	}
	if _, err := ParseInterval(string(d.Interval)); err != nil {
		return err
	}
	for i := range d.Bars {
		if err := d.Bars[i].Validate(); err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		if i > 0 && !d.Bars[i-1].Timestamp.Before(d.Bars[i].Timestamp) {
			return fmt.Errorf("bar %d: timestamp %s not after previous bar %s",
				i, d.Bars[i].Timestamp.Format(time.RFC3339), d.Bars[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// Empty reports whether the dataset holds no bars. Empty datasets are
// never cached.
func (d *Dataset) Empty() bool {
	return len(d.Bars) == 0
}

// Range returns the timestamps of the first and last bar. The zero time is
// returned for both when the dataset is empty.
func (d *Dataset) Range() (first, last time.Time) {
	if d.Empty() {
		return time.Time{}, time.Time{}
	}
	return d.Bars[0].Timestamp, d.Bars[len(d.Bars)-1].Timestamp
}

// Equal reports whether two datasets carry the same symbol, interval and
// bars. FetchedAt is intentionally excluded; it records when the data was
// retrieved, not what the data is.
func (d *Dataset) Equal(other *Dataset) bool {
	if other == nil {
		return false
	}
	if d.Symbol != other.Symbol || d.Interval != other.Interval || len(d.Bars) != len(other.Bars) {
		return false
	}
	for i := range d.Bars {
		a, b := &d.Bars[i], &other.Bars[i]
		if !a.Timestamp.Equal(b.Timestamp) || a.Volume != b.Volume {
			return false
		}
		if !a.Open.Equal(b.Open) || !a.High.Equal(b.High) || !a.Low.Equal(b.Low) ||
			!a.Close.Equal(b.Close) || !a.AdjClose.Equal(b.AdjClose) {
			return false
		}
	}
	return true
}
