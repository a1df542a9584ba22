// Package series loads two column time series from CSV files and derives
// their first difference.
package series

// TimeKind tells how the time column of a Table was interpreted.
type TimeKind int

const (
	// TimeNumeric means every time cell was a number and Time holds it as is.
	TimeNumeric TimeKind = iota
	// TimeStamp means every time cell was a date or timestamp and Time holds
	// seconds since the Unix epoch.
	TimeStamp
	// TimeOrdinal means the time cells are plain labels and Time holds the row
	// index.
	TimeOrdinal
)

func (k TimeKind) String() string {
	switch k {
	case TimeNumeric:
		return "numeric"
	case TimeStamp:
		return "timestamp"
	case TimeOrdinal:
		return "ordinal"
	}
	return "unknown"
}

// Table is a time series in file order. Time, Value and Labels always have the
// same length.
type Table struct {
	Time     []float64
	Value    []float64
	Labels   []string
	TimeKind TimeKind
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Value)
}

// Rate is the first difference of a Table's values. Value[i] is the change
// from row i to row i+1 and is placed at Time[i], the start of that interval.
type Rate struct {
	Time  []float64
	Value []float64
}

// Rate returns the first difference of the table's values paired with the
// time of each interval's starting row.
func (t *Table) Rate() Rate {
	values := Diff(t.Value)
	times := make([]float64, len(values))
	copy(times, t.Time)
	return Rate{Time: times, Value: values}
}

// Diff returns the first difference of values, values[i+1]-values[i]. The
// result has one element less than values and is empty, never nil, when there
// are fewer than two values. The difference is taken by index; it is not
// divided by the elapsed time.
func Diff(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	out := make([]float64, len(values)-1)
	for i := range out {
		out[i] = values[i+1] - values[i]
	}
	return out
}
