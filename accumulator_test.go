package motmetrics

import (
	"math"
	"testing"

	"github.com/swdee/go-motmetrics/lap"
	"gonum.org/v1/gonum/mat"
)

// expectedEvent describes one classified row, a NaN distance matches any
// row whose distance is NaN
type expectedEvent struct {
	frame int
	typ   EventType
	oid   string
	hid   string
	d     float64
}

func checkEvents(t *testing.T, got EventLog, want []expectedEvent) {

	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(got), got)
	}

	for i, w := range want {

		e := got[i]

		if e.FrameID != w.frame || e.Type != w.typ ||
			e.OID != w.oid || e.HID != w.hid {
			t.Errorf("event %d: expected %+v, got %+v", i, w, e)
			continue
		}

		if math.IsNaN(w.d) {
			if !math.IsNaN(e.D) {
				t.Errorf("event %d: expected NaN distance, got %v", i, e.D)
			}
		} else if math.Abs(e.D-w.d) > 1e-9 {
			t.Errorf("event %d: expected distance %v, got %v", i, w.d, e.D)
		}
	}
}

// TestAccumulatorSequence replays a three frame sequence and checks the
// classification of every event, using each backend in turn
func TestAccumulatorSequence(t *testing.T) {

	nan := math.NaN()

	for _, solver := range []string{"lapjv", "hungarian", "ssp"} {

		t.Run(solver, func(t *testing.T) {

			cfg, err := lap.NewDefaultConfig()
			if err != nil {
				t.Fatalf("NewDefaultConfig returned an error: %v", err)
			}

			acc := NewAccumulator(cfg, solver)

			// frame 0: two matches and one false alarm
			events, err := acc.Update(
				[]string{"a", "b"},
				[]string{"1", "2", "3"},
				mat.NewDense(2, 3, []float64{
					0.1, nan, 0.3,
					0.5, 0.2, 0.3,
				}),
			)
			if err != nil {
				t.Fatalf("Update returned an error: %v", err)
			}

			checkEvents(t, events, []expectedEvent{
				{0, TypeMatch, "a", "1", 0.1},
				{0, TypeMatch, "b", "2", 0.2},
				{0, TypeFP, "", "3", nan},
			})

			// frame 1: one match and one miss
			events, err = acc.Update(
				[]string{"a", "b"},
				[]string{"1"},
				mat.NewDense(2, 1, []float64{0.2, 0.4}),
			)
			if err != nil {
				t.Fatalf("Update returned an error: %v", err)
			}

			checkEvents(t, events, []expectedEvent{
				{1, TypeMatch, "a", "1", 0.2},
				{1, TypeMiss, "b", "", nan},
			})

			// frame 2: object a keeps hypothesis 1 despite the cheaper
			// pairing, object b switches from 2 to 3
			events, err = acc.Update(
				[]string{"a", "b"},
				[]string{"1", "3"},
				mat.NewDense(2, 2, []float64{
					0.6, 0.2,
					0.1, 0.6,
				}),
			)
			if err != nil {
				t.Fatalf("Update returned an error: %v", err)
			}

			checkEvents(t, events, []expectedEvent{
				{2, TypeMatch, "a", "1", 0.6},
				{2, TypeSwitch, "b", "3", 0.6},
			})

			if len(acc.Events()) != 7 {
				t.Errorf("expected 7 accumulated events, got %d",
					len(acc.Events()))
			}
		})
	}
}

func TestAccumulatorEmptyFrames(t *testing.T) {

	cfg, err := lap.NewDefaultConfig()
	if err != nil {
		t.Fatalf("NewDefaultConfig returned an error: %v", err)
	}

	acc := NewAccumulator(cfg, "")

	// no hypotheses: every object is missed
	events, err := acc.Update([]string{"a", "b"}, nil, nil)
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	checkEvents(t, events, []expectedEvent{
		{0, TypeMiss, "a", "", math.NaN()},
		{0, TypeMiss, "b", "", math.NaN()},
	})

	// no objects: every hypothesis is a false alarm
	events, err = acc.Update(nil, []string{"1"}, nil)
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	checkEvents(t, events, []expectedEvent{
		{1, TypeFP, "", "1", math.NaN()},
	})

	// an entirely empty frame consumes a frame id without adding rows
	events, err = acc.Update(nil, nil, nil)
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	if len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}

	events, err = acc.Update([]string{"a"}, []string{"1"},
		mat.NewDense(1, 1, []float64{0.5}))
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	checkEvents(t, events, []expectedEvent{
		{3, TypeMatch, "a", "1", 0.5},
	})
}

func TestAccumulatorUnassignableFrame(t *testing.T) {

	cfg, err := lap.NewDefaultConfig()
	if err != nil {
		t.Fatalf("NewDefaultConfig returned an error: %v", err)
	}

	acc := NewAccumulator(cfg, "")

	nan := math.NaN()

	events, err := acc.Update(
		[]string{"a"},
		[]string{"1", "2"},
		mat.NewDense(1, 2, []float64{nan, nan}),
	)
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	checkEvents(t, events, []expectedEvent{
		{0, TypeMiss, "a", "", nan},
		{0, TypeFP, "", "1", nan},
		{0, TypeFP, "", "2", nan},
	})
}

func TestAccumulatorDimensionMismatch(t *testing.T) {

	cfg, err := lap.NewDefaultConfig()
	if err != nil {
		t.Fatalf("NewDefaultConfig returned an error: %v", err)
	}

	acc := NewAccumulator(cfg, "")

	_, err = acc.Update([]string{"a"}, []string{"1", "2"},
		mat.NewDense(1, 1, []float64{0.5}))

	if err == nil {
		t.Error("expected an error for mismatched matrix dimensions")
	}
}

func TestAccumulatorReset(t *testing.T) {

	cfg, err := lap.NewDefaultConfig()
	if err != nil {
		t.Fatalf("NewDefaultConfig returned an error: %v", err)
	}

	acc := NewAccumulator(cfg, "")

	if _, err := acc.Update([]string{"a"}, []string{"1"},
		mat.NewDense(1, 1, []float64{0.5})); err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	acc.Reset()

	if len(acc.Events()) != 0 {
		t.Errorf("expected no events after reset, got %d", len(acc.Events()))
	}

	// the correspondence memory is cleared, a rematch is a MATCH again
	events, err := acc.Update([]string{"a"}, []string{"2"},
		mat.NewDense(1, 1, []float64{0.5}))
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}

	checkEvents(t, events, []expectedEvent{
		{0, TypeMatch, "a", "2", 0.5},
	})
}
