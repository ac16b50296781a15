package summoner

import (
	"context"
	"time"
)

// Repository describes summoner persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, region string, summonerID int64) (Summoner, bool, error)
	GetByStdName(ctx context.Context, region, stdName string) (Summoner, bool, error)
	// Upsert fully replaces the profile of the row keyed by (region, id).
	Upsert(ctx context.Context, s Summoner) (created bool, err error)
	// TouchProfileUpdate stamps last_update for ids whose profile fetch
	// came back not-found.
	TouchProfileUpdate(ctx context.Context, region string, summonerIDs []int64, at time.Time) error
	TouchMatchesUpdate(ctx context.Context, region string, summonerID int64, at time.Time) error
	TouchLeaguesUpdate(ctx context.Context, region string, summonerIDs []int64, at time.Time) (int, error)
	// TouchFullUpdate stamps a user-initiated refresh. Background fetches
	// never write it.
	TouchFullUpdate(ctx context.Context, region string, summonerID int64, at time.Time) error
	// ListStale returns complete summoners last updated before olderThan,
	// oldest first.
	ListStale(ctx context.Context, region string, olderThan time.Time, limit int) ([]Summoner, error)
	// ListLeaguesNeverUpdated returns ids of summoners whose league standing
	// was never stored.
	ListLeaguesNeverUpdated(ctx context.Context, region string, limit int) ([]int64, error)
}

// InvalidQueryRepository is the negative cache for name lookups.
type InvalidQueryRepository interface {
	Record(ctx context.Context, q InvalidQuery, ttl time.Duration) error
	IsRecent(ctx context.Context, region, stdName string, ttl time.Duration, now time.Time) (bool, error)
}
