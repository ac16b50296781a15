package league

import (
	"context"
	"time"
)

// Repository describes league persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, key Key) (League, bool, error)
	ListEntries(ctx context.Context, key Key) ([]Entry, error)
	// ReplaceEntries atomically swaps the entry set of the league, creating
	// the league when needed. It is a no-op returning false when the league
	// was updated less than minInterval before now.
	ReplaceEntries(ctx context.Context, key Key, entries []Entry, minInterval time.Duration, now time.Time) (bool, error)
}
