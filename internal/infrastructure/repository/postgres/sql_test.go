package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/lol-stats/internal/domain/shared"
)

func TestMapWriteError(t *testing.T) {
	t.Parallel()

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		t.Parallel()

		err := mapWriteError("insert match", &pq.Error{Code: "23505", Message: "duplicate key"})
		if !errors.Is(err, shared.ErrConflict) {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		t.Parallel()

		base := errors.New("connection reset")
		err := mapWriteError("insert match", base)
		if errors.Is(err, shared.ErrConflict) {
			t.Fatalf("unexpected conflict mapping for %v", err)
		}
		if !errors.Is(err, base) {
			t.Fatalf("expected wrapped base error, got %v", err)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()

		if err := mapWriteError("noop", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected unrelated error to not be not found")
	}
}

func TestNullTimeConversions(t *testing.T) {
	t.Parallel()

	if got := nullTimeToPtr(sql.NullTime{}); got != nil {
		t.Fatalf("expected nil for invalid null time, got %v", got)
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := nullTimeToPtr(ptrToNullTime(&now))
	if got == nil || !got.Equal(now) {
		t.Fatalf("unexpected time: got=%v want=%v", got, now)
	}
}
