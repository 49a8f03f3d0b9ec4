package entity

import "encoding/json"

// TimeSeries maps a calendar date to the rates-to-EUR published for it.
// Dates iterate in the publisher's period order when the series was created
// with NewPeriodTimeSeries, and in the order they were first recorded otherwise.
type TimeSeries struct {
	dates []string
	rates map[string]map[string]float64

	// position of each known period; nil when no period order was given
	rank map[string]int
}

// NewTimeSeries creates an empty series ordered by first recording
func NewTimeSeries() *TimeSeries {
	return &TimeSeries{rates: make(map[string]map[string]float64)}
}

// NewPeriodTimeSeries creates an empty series whose dates iterate in the order
// of periods, whatever order they are recorded in. Dates outside periods go
// after the known ones.
func NewPeriodTimeSeries(periods []string) *TimeSeries {
	ts := NewTimeSeries()
	ts.rank = make(map[string]int, len(periods))
	for i, p := range periods {
		if _, seen := ts.rank[p]; !seen {
			ts.rank[p] = i
		}
	}
	return ts
}

// Set records the rate of currency on date, overwriting any previous value
func (ts *TimeSeries) Set(date, currency string, rate float64) {
	byCurrency, ok := ts.rates[date]
	if !ok {
		byCurrency = make(map[string]float64)
		ts.rates[date] = byCurrency
		ts.insertDate(date)
	}
	byCurrency[currency] = rate
}

func (ts *TimeSeries) insertDate(date string) {
	r, known := ts.rank[date]
	if !known {
		ts.dates = append(ts.dates, date)
		return
	}

	i := 0
	for ; i < len(ts.dates); i++ {
		if other, ok := ts.rank[ts.dates[i]]; !ok || other > r {
			break
		}
	}
	ts.dates = append(ts.dates, "")
	copy(ts.dates[i+1:], ts.dates[i:])
	ts.dates[i] = date
}

// Dates returns the recorded dates in iteration order
func (ts *TimeSeries) Dates() []string {
	out := make([]string, len(ts.dates))
	copy(out, ts.dates)
	return out
}

// Rates returns a copy of the currency->rate mapping for date, or nil
func (ts *TimeSeries) Rates(date string) map[string]float64 {
	byCurrency, ok := ts.rates[date]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(byCurrency))
	for k, v := range byCurrency {
		out[k] = v
	}
	return out
}

// Rate returns the rate of currency on date and whether it was recorded
func (ts *TimeSeries) Rate(date, currency string) (float64, bool) {
	rate, ok := ts.rates[date][currency]
	return rate, ok
}

// Len returns the number of recorded dates
func (ts *TimeSeries) Len() int { return len(ts.dates) }

// IsEmpty reports whether no date was recorded
func (ts *TimeSeries) IsEmpty() bool { return len(ts.dates) == 0 }

// MarshalJSON encodes the series as {"date": {"CUR": rate}}
func (ts *TimeSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.rates)
}
