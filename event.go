package motmetrics

// EventType classifies one event log row
type EventType string

const (
	// TypeMatch marks a hypothesis correctly associated with an object
	TypeMatch EventType = "MATCH"
	// TypeSwitch marks a hypothesis associated with an object that was
	// previously matched to a different hypothesis
	TypeSwitch EventType = "SWITCH"
	// TypeFP marks a hypothesis with no corresponding object
	TypeFP EventType = "FP"
	// TypeMiss marks an object with no corresponding hypothesis
	TypeMiss EventType = "MISS"
	// TypeRaw marks an unclassified correspondence row
	TypeRaw EventType = "RAW"
)

// Event is one classified correspondence between a ground truth object and
// a tracker hypothesis within a frame
type Event struct {
	// FrameID groups rows by frame, monotonically increasing
	FrameID int
	// EventID disambiguates rows within a frame
	EventID int
	// Type is the event classification
	Type EventType
	// OID is the ground truth object identity, empty for FP rows
	OID string
	// HID is the hypothesis identity, empty for MISS rows
	HID string
	// D is the matched distance, NaN unless Type is MATCH or SWITCH
	D float64
}

// EventLog is the ordered per frame event table consumed by the metrics
// engine.  Rows are ordered by (FrameID, EventID) and the log is read only
// once handed to an evaluation.
type EventLog []Event

// Events returns the log itself, so a raw EventLog satisfies EventSource
func (l EventLog) Events() EventLog {
	return l
}

// EventSource yields an event log to evaluate metrics over.  It is
// satisfied by EventLog and by *Accumulator.
type EventSource interface {
	Events() EventLog
}
