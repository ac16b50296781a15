package executor

import (
	"context"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
)

// Handle is the opaque reference returned by Submit.
type Handle string

// Callback consumes the outcome of a completed call. It runs once per call
// that ended in a result or a negative (not found, client error) answer; res
// is nil and callErr set in the negative case. It is never called for
// exhausted or unclassified failures.
type Callback func(ctx context.Context, res riot.Result, callErr error) error

// Record is the pollable state of one submitted task.
type Record struct {
	Handle      Handle
	Operation   string
	Key         string
	Region      string
	Status      task.Status
	Attempts    int
	LastError   string
	SubmittedAt time.Time
	FinishedAt  time.Time
}

type taskState struct {
	ctx  context.Context
	op   riot.Operation
	then Callback
	rec  Record
	done chan struct{}
}
