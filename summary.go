package motmetrics

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// Summary is a metrics result table with one row per evaluated event log
// and one column per requested metric, in requested order
type Summary struct {
	// Rows holds the row labels
	Rows []string
	// Cols holds the metric names in column order
	Cols []string
	// Data holds the computed values, indexed [row][column]
	Data [][]any
}

// Value returns the computed value for the given row label and metric name
func (s *Summary) Value(row, metric string) (any, bool) {

	i := lo.IndexOf(s.Rows, row)
	j := lo.IndexOf(s.Cols, metric)

	if i < 0 || j < 0 {
		return nil, false
	}

	return s.Data[i][j], true
}

// Compute evaluates the requested metrics over a single event source and
// returns a one row summary labelled with name.  A nil metrics slice
// requests every registered metric.
func (r *Registry) Compute(src EventSource, metrics []string, name string) (*Summary, error) {
	return r.ComputeMany([]EventSource{src}, metrics, []string{name})
}

// ComputeMany evaluates the requested metrics over several event sources
// and returns one summary row per source.  A nil names slice labels rows by
// their positional index; an explicit names slice must match the number of
// sources.
func (r *Registry) ComputeMany(srcs []EventSource, metrics []string, names []string) (*Summary, error) {

	if names == nil {
		names = make([]string, len(srcs))
		for i := range srcs {
			names[i] = strconv.Itoa(i)
		}
	}

	if len(names) != len(srcs) {
		return nil, fmt.Errorf("got %d names for %d event sources",
			len(names), len(srcs))
	}

	if metrics == nil {
		metrics = r.Names()
	}

	s := &Summary{
		Rows: append([]string(nil), names...),
		Cols: append([]string(nil), metrics...),
		Data: make([][]any, 0, len(srcs)),
	}

	for _, src := range srcs {

		vals, err := r.Evaluate(src.Events(), metrics)

		if err != nil {
			return nil, err
		}

		row := make([]any, len(metrics))

		for j, m := range metrics {
			row[j] = vals[m]
		}

		s.Data = append(s.Data, row)
	}

	return s, nil
}
