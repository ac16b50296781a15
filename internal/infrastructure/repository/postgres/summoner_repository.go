package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	qb "github.com/riskibarqy/lol-stats/internal/platform/querybuilder"
)

const summonersTable = "summoners"

// upsertSummonerSuffix replaces every profile column and keeps refresh
// timestamps the incoming row does not carry. xmax is zero only for rows
// inserted by this statement.
const upsertSummonerSuffix = `ON CONFLICT (region, summoner_id)
DO UPDATE SET
    name = EXCLUDED.name,
    std_name = EXCLUDED.std_name,
    profile_icon_id = EXCLUDED.profile_icon_id,
    summoner_level = EXCLUDED.summoner_level,
    revision_date = EXCLUDED.revision_date,
    last_update = EXCLUDED.last_update,
    last_matches_update = COALESCE(EXCLUDED.last_matches_update, summoners.last_matches_update),
    last_leagues_update = COALESCE(EXCLUDED.last_leagues_update, summoners.last_leagues_update),
    last_full_update = COALESCE(EXCLUDED.last_full_update, summoners.last_full_update),
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

type SummonerRepository struct {
	db *sqlx.DB
}

func NewSummonerRepository(db *sqlx.DB) *SummonerRepository {
	return &SummonerRepository{db: db}
}

func (r *SummonerRepository) GetByID(ctx context.Context, region string, summonerID int64) (summoner.Summoner, bool, error) {
	query, args, err := qb.Select("*").From(summonersTable).
		Where(
			qb.Eq("region", region),
			qb.Eq("summoner_id", summonerID),
		).
		ToSQL()
	if err != nil {
		return summoner.Summoner{}, false, fmt.Errorf("build get summoner by id query: %w", err)
	}

	var row summonerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return summoner.Summoner{}, false, nil
		}
		return summoner.Summoner{}, false, fmt.Errorf("get summoner region=%s id=%d: %w", region, summonerID, err)
	}

	return summonerFromRow(row), true, nil
}

func (r *SummonerRepository) GetByStdName(ctx context.Context, region, stdName string) (summoner.Summoner, bool, error) {
	query, args, err := qb.Select("*").From(summonersTable).
		Where(
			qb.Eq("region", region),
			qb.Eq("std_name", stdName),
		).
		ToSQL()
	if err != nil {
		return summoner.Summoner{}, false, fmt.Errorf("build get summoner by std name query: %w", err)
	}

	var row summonerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return summoner.Summoner{}, false, nil
		}
		return summoner.Summoner{}, false, fmt.Errorf("get summoner region=%s std_name=%s: %w", region, stdName, err)
	}

	return summonerFromRow(row), true, nil
}

func (r *SummonerRepository) Upsert(ctx context.Context, s summoner.Summoner) (bool, error) {
	query, args, err := qb.InsertModel(summonersTable, summonerToInsertModel(s), upsertSummonerSuffix)
	if err != nil {
		return false, fmt.Errorf("build upsert summoner query: %w", err)
	}

	var inserted bool
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&inserted); err != nil {
		return false, mapWriteError(fmt.Sprintf("upsert summoner region=%s id=%d", s.Region, s.SummonerID), err)
	}
	return inserted, nil
}

func (r *SummonerRepository) TouchMatchesUpdate(ctx context.Context, region string, summonerID int64, at time.Time) error {
	return r.touch(ctx, "last_matches_update", region, []int64{summonerID}, at)
}

func (r *SummonerRepository) TouchProfileUpdate(ctx context.Context, region string, summonerIDs []int64, at time.Time) error {
	if len(summonerIDs) == 0 {
		return nil
	}
	return r.touch(ctx, "last_update", region, summonerIDs, at)
}

func (r *SummonerRepository) TouchFullUpdate(ctx context.Context, region string, summonerID int64, at time.Time) error {
	return r.touch(ctx, "last_full_update", region, []int64{summonerID}, at)
}

func (r *SummonerRepository) TouchLeaguesUpdate(ctx context.Context, region string, summonerIDs []int64, at time.Time) (int, error) {
	if len(summonerIDs) == 0 {
		return 0, nil
	}
	query, args, err := qb.Update(summonersTable).
		Set("last_leagues_update", at.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("region", region),
			qb.Any("summoner_id", pq.Array(summonerIDs)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build touch leagues update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("touch last_leagues_update region=%s: %w", region, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for touch leagues update: %w", err)
	}
	return int(affected), nil
}

func (r *SummonerRepository) touch(ctx context.Context, column, region string, summonerIDs []int64, at time.Time) error {
	query, args, err := qb.Update(summonersTable).
		Set(column, at.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("region", region),
			qb.Any("summoner_id", pq.Array(summonerIDs)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build touch %s query: %w", column, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("touch %s region=%s: %w", column, region, err)
	}
	return nil
}

func (r *SummonerRepository) ListStale(ctx context.Context, region string, olderThan time.Time, limit int) ([]summoner.Summoner, error) {
	query, args, err := qb.Select("*").From(summonersTable).
		Where(
			qb.Eq("region", region),
			qb.Expr("revision_date IS NOT NULL"),
			qb.Expr("last_update < ?", olderThan.UTC()),
		).
		OrderBy("last_update", "summoner_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stale summoners query: %w", err)
	}

	var rows []summonerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stale summoners region=%s: %w", region, err)
	}

	out := make([]summoner.Summoner, 0, len(rows))
	for _, row := range rows {
		out = append(out, summonerFromRow(row))
	}
	return out, nil
}

func (r *SummonerRepository) ListLeaguesNeverUpdated(ctx context.Context, region string, limit int) ([]int64, error) {
	query, args, err := qb.Select("summoner_id").From(summonersTable).
		Where(
			qb.Eq("region", region),
			qb.IsNull("last_leagues_update"),
		).
		OrderBy("summoner_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list summoners without leagues query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select summoners without leagues region=%s: %w", region, err)
	}
	return ids, nil
}

// mergePartialTx resolves one match-derived summoner inside tx.
func mergePartialTx(ctx context.Context, tx *sqlx.Tx, p summoner.Partial, refreshTTL time.Duration, now time.Time) error {
	query, args, err := qb.Select("*").From(summonersTable).
		Where(
			qb.Eq("region", p.Region),
			qb.Eq("summoner_id", p.SummonerID),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock summoner query: %w", err)
	}

	var existing *summoner.Summoner
	var row summonerTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("lock summoner region=%s id=%d: %w", p.Region, p.SummonerID, err)
		}
	} else {
		s := summonerFromRow(row)
		existing = &s
	}

	merged, write := summoner.MergePartial(existing, p, refreshTTL, now)
	if !write {
		return nil
	}

	if existing == nil {
		// No conflict target: a std_name collision with a renamed summoner
		// leaves the slot unresolved instead of aborting the match.
		insertQuery, insertArgs, err := qb.InsertModel(summonersTable, summonerToInsertModel(merged), "ON CONFLICT DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert partial summoner query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert partial summoner region=%s id=%d: %w", p.Region, p.SummonerID, err)
		}
		return nil
	}

	updateQuery, updateArgs, err := qb.Update(summonersTable).
		Set("name", merged.Name).
		Set("std_name", merged.StdName).
		Set("profile_icon_id", merged.ProfileIconID).
		Set("last_update", merged.LastUpdate.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("region", merged.Region),
			qb.Eq("summoner_id", merged.SummonerID),
			qb.Expr("NOT EXISTS (SELECT 1 FROM summoners other WHERE other.region = ? AND other.std_name = ? AND other.summoner_id <> ?)",
				merged.Region, merged.StdName, merged.SummonerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build refresh partial summoner query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return fmt.Errorf("refresh partial summoner region=%s id=%d: %w", p.Region, p.SummonerID, err)
	}
	return nil
}

func summonerFromRow(row summonerTableModel) summoner.Summoner {
	return summoner.Summoner{
		Region:            row.Region,
		SummonerID:        row.SummonerID,
		Name:              row.Name,
		StdName:           row.StdName,
		ProfileIconID:     row.ProfileIconID,
		SummonerLevel:     int(row.SummonerLevel.Int64),
		RevisionDate:      nullTimeToPtr(row.RevisionDate),
		LastUpdate:        row.LastUpdate.UTC(),
		LastMatchesUpdate: nullTimeToPtr(row.LastMatchesUpdate),
		LastLeaguesUpdate: nullTimeToPtr(row.LastLeaguesUpdate),
		LastFullUpdate:    nullTimeToPtr(row.LastFullUpdate),
	}
}

func summonerToInsertModel(s summoner.Summoner) summonerInsertModel {
	level := sql.NullInt64{}
	if s.Complete() {
		level = sql.NullInt64{Int64: int64(s.SummonerLevel), Valid: true}
	}
	return summonerInsertModel{
		Region:            s.Region,
		SummonerID:        s.SummonerID,
		Name:              s.Name,
		StdName:           s.StdName,
		ProfileIconID:     s.ProfileIconID,
		SummonerLevel:     level,
		RevisionDate:      ptrToNullTime(s.RevisionDate),
		LastUpdate:        s.LastUpdate.UTC(),
		LastMatchesUpdate: ptrToNullTime(s.LastMatchesUpdate),
		LastLeaguesUpdate: ptrToNullTime(s.LastLeaguesUpdate),
		LastFullUpdate:    ptrToNullTime(s.LastFullUpdate),
	}
}
