package motmetrics

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/swdee/go-motmetrics/lap"
	"gonum.org/v1/gonum/mat"
)

// Accumulator builds an event log from per frame ground truth and
// hypothesis identities plus their pairwise distance matrix.  Distances are
// caller defined, a NaN or Inf cell marks a pair that may never be matched.
type Accumulator struct {
	// solver layer configuration deciding the backend used per frame
	lapCfg *lap.Config
	// solver backend name, empty selects the configured default
	solver string
	// last matched hypothesis per object, persists across frames
	last map[string]string
	// accumulated event log
	events EventLog
	// next auto assigned frame id
	nextFrame int
}

// NewAccumulator initializes and returns a new Accumulator.  The solver
// name selects the assignment backend used for per frame matching, an empty
// name selects the default backend of the Config.
func NewAccumulator(cfg *lap.Config, solver string) *Accumulator {

	return &Accumulator{
		lapCfg: cfg,
		solver: solver,
		last:   make(map[string]string),
	}
}

// Reset clears the accumulated events and the correspondence memory
func (a *Accumulator) Reset() {
	a.last = make(map[string]string)
	a.events = nil
	a.nextFrame = 0
}

// Events returns the accumulated event log
func (a *Accumulator) Events() EventLog {
	return a.events
}

// Update classifies the correspondences of one frame and appends them to
// the event log.  oids and hids are the object and hypothesis identities
// present in the frame and dists is the len(oids) x len(hids) distance
// matrix, which may be nil when either side is empty.  The events appended
// for this frame are returned.
func (a *Accumulator) Update(oids, hids []string, dists *mat.Dense) (EventLog, error) {

	r, c := 0, 0

	if dists != nil {
		r, c = dists.Dims()
	}

	if len(oids) != r || len(hids) != c {
		return nil, fmt.Errorf(
			"distance matrix is %dx%d for %d objects and %d hypotheses",
			r, c, len(oids), len(hids))
	}

	frame := a.nextFrame
	a.nextFrame++

	eid := 0
	start := len(a.events)

	add := func(t EventType, oid, hid string, d float64) {
		a.events = append(a.events, Event{
			FrameID: frame,
			EventID: eid,
			Type:    t,
			OID:     oid,
			HID:     hid,
			D:       d,
		})
		eid++
	}

	oUsed := make([]bool, len(oids))
	hUsed := make([]bool, len(hids))

	if r > 0 && c > 0 {

		// work on a copy so the caller's matrix stays untouched
		d := mat.DenseCopyOf(dists)

		// Step 1: re-establish correspondences from previous frames. An
		// object keeps its last hypothesis whenever both are present and
		// the pair is assignable, even if a cheaper pairing exists.
		for i, o := range oids {

			prev, ok := a.last[o]

			if !ok {
				continue
			}

			j := lo.IndexOf(hids, prev)

			if j < 0 || hUsed[j] || oUsed[i] {
				continue
			}

			if v := d.At(i, j); isFinite(v) {
				oUsed[i] = true
				hUsed[j] = true
				a.last[o] = hids[j]
				add(TypeMatch, o, hids[j], v)
			}
		}

		// Step 2: assign the remaining pairs at minimum total distance.
		// Consumed rows and columns are masked out first.
		for i := range oids {
			for j := range hids {
				if oUsed[i] || hUsed[j] {
					d.Set(i, j, math.NaN())
				}
			}
		}

		rows, cols, err := a.lapCfg.Solve(d, a.solver)

		if err != nil {
			return nil, fmt.Errorf("solving assignment for frame %d: %w",
				frame, err)
		}

		for k := range rows {

			i, j := rows[k], cols[k]
			v := d.At(i, j)

			if !isFinite(v) {
				continue
			}

			o, h := oids[i], hids[j]

			t := TypeMatch

			if prev, ok := a.last[o]; ok && prev != h {
				t = TypeSwitch
			}

			add(t, o, h, v)

			oUsed[i] = true
			hUsed[j] = true
			a.last[o] = h
		}
	}

	// Step 3: remaining objects were missed
	for i, o := range oids {
		if !oUsed[i] {
			add(TypeMiss, o, "", math.NaN())
		}
	}

	// Step 4: remaining hypotheses are false positives
	for j, h := range hids {
		if !hUsed[j] {
			add(TypeFP, "", h, math.NaN())
		}
	}

	return a.events[start:], nil
}

// isFinite reports whether v is neither NaN nor an infinity
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
