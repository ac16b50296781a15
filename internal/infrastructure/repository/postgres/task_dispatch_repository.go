package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	qb "github.com/riskibarqy/lol-stats/internal/platform/querybuilder"
)

type TaskDispatchRepository struct {
	db *sqlx.DB
}

func NewTaskDispatchRepository(db *sqlx.DB) *TaskDispatchRepository {
	return &TaskDispatchRepository{db: db}
}

func (r *TaskDispatchRepository) UpsertEvent(ctx context.Context, event task.Event) error {
	handle := strings.TrimSpace(event.Handle)
	if handle == "" {
		return fmt.Errorf("task handle is required")
	}

	operation := strings.TrimSpace(event.Operation)
	if operation == "" {
		operation = "unknown"
	}

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	paramsJSON, err := marshalParams(event.Params)
	if err != nil {
		return fmt.Errorf("marshal task params: %w", err)
	}

	model := taskDispatchInsertModel{
		Handle:       handle,
		Operation:    operation,
		OperationKey: event.Key,
		Region:       event.Region,
		Params:       paramsJSON,
		Status:       string(event.Status),
		Attempts:     event.Attempts,
		LastError:    optionalString(event.ErrorMessage),
		TraceID:      optionalString(event.TraceID),
		SpanID:       optionalString(event.SpanID),
	}

	switch event.Status {
	case task.StatusPending:
		model.SubmittedAt = &occurredAt
		model.LastError = nil
	case task.StatusSuccess:
		model.FinishedAt = &occurredAt
		model.LastError = nil
	case task.StatusFailed:
		model.FinishedAt = &occurredAt
	}

	query, args, err := qb.InsertModel("task_dispatches", model, `ON CONFLICT (handle)
DO UPDATE SET
    status = EXCLUDED.status,
    attempts = GREATEST(task_dispatches.attempts, EXCLUDED.attempts),
    submitted_at = COALESCE(task_dispatches.submitted_at, EXCLUDED.submitted_at),
    finished_at = CASE
        WHEN EXCLUDED.status IN ('success', 'failed') THEN EXCLUDED.finished_at
        ELSE task_dispatches.finished_at
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        ELSE NULL
    END,
    trace_id = COALESCE(task_dispatches.trace_id, EXCLUDED.trace_id),
    span_id = COALESCE(task_dispatches.span_id, EXCLUDED.span_id),
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert task dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert task dispatch handle=%s status=%s: %w", handle, event.Status, err)
	}

	return nil
}

func marshalParams(params any) (string, error) {
	if params == nil {
		return "{}", nil
	}
	raw, err := sonic.MarshalString(params)
	if err != nil {
		return "", err
	}
	return raw, nil
}
