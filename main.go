// Command rampview plots a time series from a CSV file together with its
// first difference.
//
//	rampview ramp.csv
//
// The file needs a header row with a time and a value column. The window stays
// open until it is closed with Escape or the window's close button.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(showFigure)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
