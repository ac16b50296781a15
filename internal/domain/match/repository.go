package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	// ExistingIDs returns the subset of ids already stored for region, in
	// one query.
	ExistingIDs(ctx context.Context, region string, ids []int64) ([]int64, error)
	Get(ctx context.Context, region string, matchID int64) (Match, bool, error)
	// Create stores m with its participants, identities and teams in one
	// atomic unit. Identified summoners are resolved with
	// summoner.MergePartial using partialRefreshTTL. An existing match makes
	// it a no-op returning false.
	Create(ctx context.Context, m Match, partialRefreshTTL time.Duration, now time.Time) (bool, error)
}
