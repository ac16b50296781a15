package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
)

const invalidQueryKeyPrefix = "lolstats:invalid_query:"

// InvalidQueryRepository stores negative lookups as expiring keys so several
// worker processes share one negative cache.
type InvalidQueryRepository struct {
	client goredis.Cmdable
}

func NewInvalidQueryRepository(client goredis.Cmdable) *InvalidQueryRepository {
	return &InvalidQueryRepository{client: client}
}

func (r *InvalidQueryRepository) Record(ctx context.Context, q summoner.InvalidQuery, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("invalid query ttl must be > 0")
	}
	value := q.CreatedAt.UTC().Format(time.RFC3339Nano)
	if err := r.client.Set(ctx, invalidQueryKey(q.Region, q.StdName), value, ttl).Err(); err != nil {
		return fmt.Errorf("set invalid query region=%s std_name=%s: %w", q.Region, q.StdName, err)
	}
	return nil
}

func (r *InvalidQueryRepository) IsRecent(ctx context.Context, region, stdName string, ttl time.Duration, now time.Time) (bool, error) {
	raw, err := r.client.Get(ctx, invalidQueryKey(region, stdName)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get invalid query region=%s std_name=%s: %w", region, stdName, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return false, fmt.Errorf("parse invalid query created_at %q: %w", raw, err)
	}
	return now.Sub(createdAt) < ttl, nil
}

func invalidQueryKey(region, stdName string) string {
	return invalidQueryKeyPrefix + region + ":" + stdName
}
