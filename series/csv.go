package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// TimeColumn is the header name of the time column.
	TimeColumn = "time"
	// ValueColumn is the header name of the value column.
	ValueColumn = "value"
)

// Timestamp layouts tried for non-numeric time columns, in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads the time series in the CSV file at path. Any failure, including a
// missing file, is returned as a *DataLoadError.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a CSV time series from r. The first record is the header and
// must name a time and a value column; all other columns are ignored. name is
// only used in errors.
func Read(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DataLoadError{Path: name, Err: ErrEmpty}
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	timeIdx, valueIdx := -1, -1
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		switch strings.TrimSpace(h) {
		case TimeColumn:
			if timeIdx == -1 {
				timeIdx = i
			}
		case ValueColumn:
			if valueIdx == -1 {
				valueIdx = i
			}
		}
	}
	if timeIdx == -1 {
		return nil, &DataLoadError{Path: name, Column: TimeColumn, Err: ErrMissingColumn}
	}
	if valueIdx == -1 {
		return nil, &DataLoadError{Path: name, Column: ValueColumn, Err: ErrMissingColumn}
	}

	t := &Table{
		Time:   []float64{},
		Value:  []float64{},
		Labels: []string{},
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := reader.FieldPos(valueIdx)

		cell := strings.TrimSpace(record[valueIdx])
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &DataLoadError{
				Path:   name,
				Line:   line,
				Column: ValueColumn,
				Err:    fmt.Errorf("%q is %w", cell, ErrNotNumeric),
			}
		}
		t.Value = append(t.Value, v)
		t.Labels = append(t.Labels, strings.TrimSpace(record[timeIdx]))
	}

	t.Time, t.TimeKind = parseTimes(t.Labels)
	return t, nil
}

// parseTimes interprets the whole time column the same way: as numbers if
// every cell is one, else as timestamps if every cell is one, else by row
// index.
func parseTimes(labels []string) ([]float64, TimeKind) {
	times := make([]float64, len(labels))

	numeric := true
	for i, s := range labels {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			numeric = false
			break
		}
		times[i] = f
	}
	if numeric {
		return times, TimeNumeric
	}

	stamps := true
	for i, s := range labels {
		ts, ok := parseTimestamp(s)
		if !ok {
			stamps = false
			break
		}
		times[i] = float64(ts.Unix()) + float64(ts.Nanosecond())/1e9
	}
	if stamps {
		return times, TimeStamp
	}

	for i := range times {
		times[i] = float64(i)
	}
	return times, TimeOrdinal
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func csvError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &DataLoadError{Path: name, Line: parseErr.Line, Err: parseErr.Err}
	}
	return &DataLoadError{Path: name, Err: err}
}
