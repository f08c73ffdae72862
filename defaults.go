package motmetrics

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// MOTChallengeMetrics lists the metrics reported by the MOTChallenge
// benchmark in its usual column order
var MOTChallengeMetrics = []string{
	"recall", "precision", "num_unique_objects",
	"mostly_tracked", "partially_tracked", "mostly_lost",
	"num_falsepositives", "num_misses", "num_switches",
	"num_fragmentation", "mota", "motp",
}

// DefaultMetrics builds a registry pre-populated with the standard CLEAR
// MOT and track quality metrics
func DefaultMetrics() *Registry {

	r := NewRegistry()

	reg := func(name string, deps []string, fn MetricFunc) {
		if err := r.Register(name, deps, fn); err != nil {
			panic(err)
		}
	}

	reg("num_frames", nil, numFrames)
	reg("obj_frequencies", nil, objFrequencies)
	reg("num_matches", nil, typeCounter(TypeMatch))
	reg("num_switches", nil, typeCounter(TypeSwitch))
	reg("num_falsepositives", nil, typeCounter(TypeFP))
	reg("num_misses", nil, typeCounter(TypeMiss))
	reg("num_detections", []string{"num_matches", "num_switches"}, numDetections)
	reg("num_objects", nil, numObjects)
	reg("num_unique_objects", []string{"obj_frequencies"}, numUniqueObjects)
	reg("track_ratios", []string{"obj_frequencies"}, trackRatios)
	reg("mostly_tracked", []string{"track_ratios"}, mostlyTracked)
	reg("partially_tracked", []string{"track_ratios"}, partiallyTracked)
	reg("mostly_lost", []string{"track_ratios"}, mostlyLost)
	reg("num_fragmentation", []string{"obj_frequencies"}, numFragmentation)
	reg("motp", []string{"num_detections"}, motp)
	reg("mota", []string{"num_misses", "num_switches",
		"num_falsepositives", "num_objects"}, mota)
	reg("precision", []string{"num_detections", "num_falsepositives"}, precision)
	reg("recall", []string{"num_detections", "num_objects"}, recall)

	return r
}

// savediv returns a/b, or NaN when b is zero
func savediv(a, b float64) float64 {

	if b == 0 {
		return math.NaN()
	}

	return a / b
}

// typeCounter builds a metric counting the rows of one event type
func typeCounter(t EventType) MetricFunc {

	return func(events EventLog, _ []any) any {
		return float64(lo.CountBy(events, func(e Event) bool {
			return e.Type == t
		}))
	}
}

// numFrames counts the distinct frame ids in the log
func numFrames(events EventLog, _ []any) any {

	frames := lo.Uniq(lo.Map(events, func(e Event, _ int) int {
		return e.FrameID
	}))

	return float64(len(frames))
}

// objFrequencies counts per object how often it appears in the log
func objFrequencies(events EventLog, _ []any) any {

	freq := make(map[string]float64)

	for _, e := range events {
		if e.OID != "" {
			freq[e.OID]++
		}
	}

	return freq
}

// numUniqueObjects counts the distinct ground truth objects
func numUniqueObjects(_ EventLog, deps []any) any {
	return float64(len(deps[0].(map[string]float64)))
}

// numDetections sums matches and switches
func numDetections(_ EventLog, deps []any) any {
	return deps[0].(float64) + deps[1].(float64)
}

// numObjects counts the rows carrying a ground truth object identity
func numObjects(events EventLog, _ []any) any {

	return float64(lo.CountBy(events, func(e Event) bool {
		return e.OID != ""
	}))
}

// trackRatios computes per object the ratio of rows where a correspondence
// was assigned to its total number of occurrences.  An object never assigned
// a correspondence gets ratio 0 and counts as mostly lost.
func trackRatios(events EventLog, deps []any) any {

	freq := deps[0].(map[string]float64)

	tracked := make(map[string]float64)

	for _, e := range events {
		if e.OID != "" && e.Type != TypeMiss {
			tracked[e.OID]++
		}
	}

	ratios := make(map[string]float64, len(freq))

	for o, n := range freq {
		ratios[o] = tracked[o] / n
	}

	return ratios
}

// mostlyTracked counts objects tracked for at least 80% of their lifespan
func mostlyTracked(_ EventLog, deps []any) any {

	ratios := deps[0].(map[string]float64)

	return float64(lo.CountBy(lo.Values(ratios), func(r float64) bool {
		return r >= 0.8
	}))
}

// partiallyTracked counts objects tracked between 20% and 80% of their
// lifespan
func partiallyTracked(_ EventLog, deps []any) any {

	ratios := deps[0].(map[string]float64)

	return float64(lo.CountBy(lo.Values(ratios), func(r float64) bool {
		return r >= 0.2 && r < 0.8
	}))
}

// mostlyLost counts objects tracked for less than 20% of their lifespan
func mostlyLost(_ EventLog, deps []any) any {

	ratios := deps[0].(map[string]float64)

	return float64(lo.CountBy(lo.Values(ratios), func(r float64) bool {
		return r < 0.2
	}))
}

// numFragmentation counts how often object trajectories are interrupted.
// For each object the rows between its first and last non miss row form the
// track span, and every transition from a tracked state into a miss within
// that span counts as one fragmentation.
func numFragmentation(events EventLog, deps []any) any {

	freq := deps[0].(map[string]float64)

	fra := 0.0

	for o := range freq {

		rows := lo.Filter(events, func(e Event, _ int) bool {
			return e.OID == o
		})

		first, last := -1, -1

		for i, e := range rows {
			if e.Type != TypeMiss {
				if first < 0 {
					first = i
				}
				last = i
			}
		}

		if first < 0 {
			continue
		}

		inMiss := false

		for _, e := range rows[first : last+1] {

			miss := e.Type == TypeMiss

			if miss && !inMiss {
				fra++
			}

			inMiss = miss
		}
	}

	return fra
}

// motp is the mean distance over all assigned correspondences
func motp(events EventLog, deps []any) any {

	var dists []float64

	for _, e := range events {
		if e.Type == TypeMatch || e.Type == TypeSwitch {
			dists = append(dists, e.D)
		}
	}

	return savediv(floats.Sum(dists), deps[0].(float64))
}

// mota is the multiple object tracker accuracy score
func mota(_ EventLog, deps []any) any {

	misses := deps[0].(float64)
	switches := deps[1].(float64)
	falsePositives := deps[2].(float64)
	objects := deps[3].(float64)

	return 1.0 - savediv(misses+switches+falsePositives, objects)
}

// precision is the share of correct detections among all detections
func precision(_ EventLog, deps []any) any {

	detections := deps[0].(float64)
	falsePositives := deps[1].(float64)

	return savediv(detections, falsePositives+detections)
}

// recall is the share of objects covered by a correct detection
func recall(_ EventLog, deps []any) any {
	return savediv(deps[0].(float64), deps[1].(float64))
}
