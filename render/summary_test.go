package render

import (
	"math"
	"strings"
	"testing"

	motmetrics "github.com/swdee/go-motmetrics"
)

func TestSummaryTable(t *testing.T) {

	s := &motmetrics.Summary{
		Rows: []string{"seq"},
		Cols: []string{"num_frames", "mota", "motp", "recall"},
		Data: [][]any{
			{2.0, 0.25, 0.2, math.NaN()},
		},
	}

	out := Summary(s, DefaultFormatters, MOTChallengeNames)

	for _, want := range []string{"Frames", "MOTA", "MOTP", "seq",
		"25.0%", "0.200", "NaN"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}

	// counts render as plain integers
	if strings.Contains(out, "2.0") {
		t.Errorf("expected integral count formatting:\n%s", out)
	}
}

func TestSummaryWithoutMappings(t *testing.T) {

	s := &motmetrics.Summary{
		Rows: []string{"0", "1"},
		Cols: []string{"num_matches"},
		Data: [][]any{{3.0}, {1.0}},
	}

	out := Summary(s, nil, nil)

	if !strings.Contains(out, "num_matches") {
		t.Errorf("expected the raw metric name as header:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 3 {
		t.Errorf("expected header plus two rows, got %d lines:\n%s",
			len(lines), out)
	}
}
