package task

import "context"

// Recorder persists task lifecycle events for later inspection.
type Recorder interface {
	UpsertEvent(ctx context.Context, event Event) error
}
