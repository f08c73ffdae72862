/*
Package render formats metrics summary tables for terminal display.
*/
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/swdee/go-motmetrics"
)

// Formatter converts one metric value into its display string
type Formatter func(v any) string

// MOTChallengeNames maps metric names to the column headers used by the
// MOTChallenge benchmark
var MOTChallengeNames = map[string]string{
	"num_frames":         "Frames",
	"num_matches":        "Match",
	"num_switches":       "Switch",
	"num_falsepositives": "FalsePos",
	"num_misses":         "Miss",
	"num_detections":     "Detections",
	"num_objects":        "GT",
	"num_unique_objects": "Objs",
	"mostly_tracked":     "MT",
	"partially_tracked":  "PT",
	"mostly_lost":        "ML",
	"num_fragmentation":  "Frag",
	"mota":               "MOTA",
	"motp":               "MOTP",
	"precision":          "Precision",
	"recall":             "Recall",
}

// DefaultFormatters formats ratio metrics as percentages and MOTP with
// fixed precision, counts render as plain integers
var DefaultFormatters = map[string]Formatter{
	"mota":      Percent,
	"precision": Percent,
	"recall":    Percent,
	"motp":      Decimal,
}

// Percent formats a ratio scalar as a percentage with one decimal place
func Percent(v any) string {

	f, ok := v.(float64)

	if !ok || math.IsNaN(f) {
		return defaultFormat(v)
	}

	return fmt.Sprintf("%.1f%%", f*100)
}

// Decimal formats a scalar with three decimal places
func Decimal(v any) string {

	f, ok := v.(float64)

	if !ok || math.IsNaN(f) {
		return defaultFormat(v)
	}

	return fmt.Sprintf("%.3f", f)
}

// defaultFormat renders whole valued scalars as integers and everything
// else through the fmt package
func defaultFormat(v any) string {

	f, ok := v.(float64)

	if !ok {
		return fmt.Sprint(v)
	}

	if math.IsNaN(f) {
		return "NaN"
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Summary renders the summary as an aligned text table.  The namemap
// replaces metric names with display headers and formatters overrides the
// default formatting per metric, both may be nil.
func Summary(s *motmetrics.Summary, formatters map[string]Formatter,
	namemap map[string]string) string {

	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	// header row, first column holds the row labels
	for _, col := range s.Cols {

		header := col

		if name, ok := namemap[col]; ok {
			header = name
		}

		fmt.Fprintf(w, "\t%s", header)
	}

	fmt.Fprintln(w)

	for i, row := range s.Rows {

		fmt.Fprint(w, row)

		for j, col := range s.Cols {

			format := defaultFormat

			if f, ok := formatters[col]; ok {
				format = f
			}

			fmt.Fprintf(w, "\t%s", format(s.Data[i][j]))
		}

		fmt.Fprintln(w)
	}

	w.Flush()

	return b.String()
}
