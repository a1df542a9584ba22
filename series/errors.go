package series

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is the cause when the input has no header row.
	ErrEmpty = errors.New("no header row")
	// ErrMissingColumn is the cause when a required column is not in the header.
	ErrMissingColumn = errors.New("missing column")
	// ErrNotNumeric is the cause when a value cell is not a finite number.
	ErrNotNumeric = errors.New("not a finite number")
)

// DataLoadError is returned for every failure to load a time series. Line is
// the 1-based line in the file, or 0 if the failure is not about one row.
type DataLoadError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "load " + e.Path
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	if e.Err == nil {
		return msg + ": failed"
	}
	return msg + ": " + e.Err.Error()
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
