package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/platform/cache"
)

// InvalidQueryRepository keeps negative lookups in an expiring in-process
// map. Deadlines are created_at plus ttl and are judged on the caller clock
// only.
type InvalidQueryRepository struct {
	entries *cache.Store[time.Time]
}

func NewInvalidQueryRepository() *InvalidQueryRepository {
	return &InvalidQueryRepository{entries: cache.NewStore[time.Time](0)}
}

// purgeAbove bounds the map between Purge passes.
const purgeAbove = 1024

func (r *InvalidQueryRepository) Record(ctx context.Context, q summoner.InvalidQuery, ttl time.Duration) error {
	if r.entries.Len() >= purgeAbove {
		r.entries.PurgeAt(ctx, q.CreatedAt)
	}
	r.entries.SetUntil(ctx, invalidQueryKey(q.Region, q.StdName), q.CreatedAt, q.CreatedAt.Add(ttl))
	return nil
}

func (r *InvalidQueryRepository) IsRecent(ctx context.Context, region, stdName string, ttl time.Duration, now time.Time) (bool, error) {
	createdAt, ok := r.entries.GetAt(ctx, invalidQueryKey(region, stdName), now)
	if !ok {
		return false, nil
	}
	return now.Sub(createdAt) < ttl, nil
}

func invalidQueryKey(region, stdName string) string {
	return region + ":" + stdName
}
