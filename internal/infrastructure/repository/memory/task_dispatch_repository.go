package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/lol-stats/internal/domain/task"
)

type TaskDispatchRepository struct {
	store *Store
}

func (r *TaskDispatchRepository) UpsertEvent(_ context.Context, event task.Event) error {
	handle := strings.TrimSpace(event.Handle)
	if handle == "" {
		return fmt.Errorf("task handle is required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if prev, ok := r.store.tasks[handle]; ok && prev.Attempts > event.Attempts {
		event.Attempts = prev.Attempts
	}
	r.store.tasks[handle] = event
	return nil
}

// Event returns the latest recorded event for handle.
func (r *TaskDispatchRepository) Event(handle string) (task.Event, bool) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.tasks[handle]
	return e, ok
}
