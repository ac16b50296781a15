package postgres

import "time"

type taskDispatchInsertModel struct {
	Handle       string     `db:"handle"`
	Operation    string     `db:"operation"`
	OperationKey string     `db:"operation_key"`
	Region       string     `db:"region"`
	Params       string     `db:"params"`
	Status       string     `db:"status"`
	Attempts     int        `db:"attempts"`
	SubmittedAt  *time.Time `db:"submitted_at"`
	FinishedAt   *time.Time `db:"finished_at"`
	LastError    *string    `db:"last_error"`
	TraceID      *string    `db:"trace_id"`
	SpanID       *string    `db:"span_id"`
}
