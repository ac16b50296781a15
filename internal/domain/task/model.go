package task

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	// StatusUnknown is reported for handles that were never issued or have
	// been pruned after the retention window.
	StatusUnknown Status = "unknown"
)

func (s Status) Done() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Event is one lifecycle transition of a submitted task.
type Event struct {
	Handle       string
	Operation    string
	Key          string
	Region       string
	// Params is the typed operation payload, persisted as JSON.
	Params       any
	Status       Status
	Attempts     int
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
