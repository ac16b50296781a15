package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	qb "github.com/riskibarqy/lol-stats/internal/platform/querybuilder"
)

type InvalidQueryRepository struct {
	db *sqlx.DB
}

func NewInvalidQueryRepository(db *sqlx.DB) *InvalidQueryRepository {
	return &InvalidQueryRepository{db: db}
}

// Record stores or re-arms the entry. Expiry is evaluated on read, so ttl is
// only used to purge rows that are long past it.
func (r *InvalidQueryRepository) Record(ctx context.Context, q summoner.InvalidQuery, ttl time.Duration) error {
	query, args, err := qb.InsertModel("invalid_queries", invalidQueryTableModel{
		Region:    q.Region,
		StdName:   q.StdName,
		CreatedAt: q.CreatedAt.UTC(),
	}, `ON CONFLICT (region, std_name)
DO UPDATE SET created_at = EXCLUDED.created_at`)
	if err != nil {
		return fmt.Errorf("build upsert invalid query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert invalid query region=%s std_name=%s: %w", q.Region, q.StdName, err)
	}

	if ttl > 0 {
		purgeQuery, purgeArgs, err := qb.DeleteFrom("invalid_queries").
			Where(qb.Expr("created_at < ?", q.CreatedAt.Add(-ttl).UTC())).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build purge invalid queries: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, purgeQuery, purgeArgs...); err != nil {
			return fmt.Errorf("purge invalid queries: %w", err)
		}
	}
	return nil
}

func (r *InvalidQueryRepository) IsRecent(ctx context.Context, region, stdName string, ttl time.Duration, now time.Time) (bool, error) {
	query, args, err := qb.Select("*").From("invalid_queries").
		Where(
			qb.Eq("region", region),
			qb.Eq("std_name", stdName),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build get invalid query: %w", err)
	}

	var row invalidQueryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get invalid query region=%s std_name=%s: %w", region, stdName, err)
	}
	return now.Sub(row.CreatedAt) < ttl, nil
}
