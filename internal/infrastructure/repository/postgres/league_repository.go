package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-stats/internal/domain/league"
	qb "github.com/riskibarqy/lol-stats/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Get(ctx context.Context, key league.Key) (league.League, bool, error) {
	row, exists, err := r.getRow(ctx, r.db, key, false)
	if err != nil || !exists {
		return league.League{}, exists, err
	}
	return league.League{Key: key, LastUpdate: nullTimeToPtr(row.LastUpdate)}, true, nil
}

func (r *LeagueRepository) ListEntries(ctx context.Context, key league.Key) ([]league.Entry, error) {
	row, exists, err := r.getRow(ctx, r.db, key, false)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("league_entries").
		Where(qb.Eq("league_id", row.ID)).
		OrderBy("league_points DESC", "player_or_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league entries query: %w", err)
	}

	var rows []leagueEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select league entries league=%s: %w", key, err)
	}

	out := make([]league.Entry, 0, len(rows))
	for _, item := range rows {
		out = append(out, leagueEntryFromRow(item))
	}
	return out, nil
}

// ReplaceEntries locks the league row so concurrent replacers of the same key
// run one after another; the second sees the fresh last_update and backs off.
func (r *LeagueRepository) ReplaceEntries(ctx context.Context, key league.Key, entries []league.Entry, minInterval time.Duration, now time.Time) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for league replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ensureQuery, ensureArgs, err := qb.InsertInto("leagues").
		Columns("region", "queue", "name", "tier").
		Values(key.Region, key.Queue, key.Name, key.Tier).
		Suffix("ON CONFLICT (region, queue, name, tier) DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build ensure league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ensureQuery, ensureArgs...); err != nil {
		return false, mapWriteError(fmt.Sprintf("ensure league %s", key), err)
	}

	row, exists, err := r.getRow(ctx, tx, key, true)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("league %s vanished inside replace tx", key)
	}
	if !league.UpdateDue(nullTimeToPtr(row.LastUpdate), minInterval, now) {
		return false, nil
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("league_entries").
		Where(qb.Eq("league_id", row.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete league entries query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return false, fmt.Errorf("delete league entries league=%s: %w", key, err)
	}

	entries = league.DedupEntries(entries)
	if len(entries) > 0 {
		models := make([]leagueEntryTableModel, 0, len(entries))
		for _, e := range entries {
			models = append(models, leagueEntryToRow(row.ID, e))
		}
		insertQuery, insertArgs, err := qb.InsertModels("league_entries", models, "")
		if err != nil {
			return false, fmt.Errorf("build insert league entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return false, mapWriteError(fmt.Sprintf("insert league entries league=%s", key), err)
		}
	}

	stampQuery, stampArgs, err := qb.Update("leagues").
		Set("last_update", now.UTC()).
		Where(qb.Eq("id", row.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build stamp league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, stampQuery, stampArgs...); err != nil {
		return false, fmt.Errorf("stamp league %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit league replace tx: %w", err)
	}
	return true, nil
}

func (r *LeagueRepository) getRow(ctx context.Context, q sqlx.QueryerContext, key league.Key, forUpdate bool) (leagueTableModel, bool, error) {
	b := qb.Select("*").From("leagues").
		Where(
			qb.Eq("region", key.Region),
			qb.Eq("queue", key.Queue),
			qb.Eq("name", key.Name),
			qb.Eq("tier", key.Tier),
		)
	if forUpdate {
		b = b.ForUpdate()
	}
	query, args, err := b.ToSQL()
	if err != nil {
		return leagueTableModel{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leagueTableModel{}, false, nil
		}
		return leagueTableModel{}, false, fmt.Errorf("get league %s: %w", key, err)
	}
	return row, true, nil
}

func leagueEntryFromRow(row leagueEntryTableModel) league.Entry {
	e := league.Entry{
		PlayerOrTeamID:   row.PlayerOrTeamID,
		PlayerOrTeamName: row.PlayerOrTeamName,
		Division:         row.Division,
		LeaguePoints:     row.LeaguePoints,
		Wins:             row.Wins,
		Losses:           row.Losses,
		IsFreshBlood:     row.IsFreshBlood,
		IsHotStreak:      row.IsHotStreak,
		IsInactive:       row.IsInactive,
		IsVeteran:        row.IsVeteran,
	}
	if row.MiniSeriesTarget.Valid {
		e.MiniSeries = &league.MiniSeries{
			Wins:     int(row.MiniSeriesWins.Int64),
			Losses:   int(row.MiniSeriesLosses.Int64),
			Target:   int(row.MiniSeriesTarget.Int64),
			Progress: row.MiniSeriesProgress.String,
		}
	}
	return e
}

func leagueEntryToRow(leagueID int64, e league.Entry) leagueEntryTableModel {
	row := leagueEntryTableModel{
		LeagueID:         leagueID,
		PlayerOrTeamID:   e.PlayerOrTeamID,
		PlayerOrTeamName: e.PlayerOrTeamName,
		Division:         e.Division,
		LeaguePoints:     e.LeaguePoints,
		Wins:             e.Wins,
		Losses:           e.Losses,
		IsFreshBlood:     e.IsFreshBlood,
		IsHotStreak:      e.IsHotStreak,
		IsInactive:       e.IsInactive,
		IsVeteran:        e.IsVeteran,
	}
	if ms := e.MiniSeries; ms != nil {
		row.MiniSeriesWins = sql.NullInt64{Int64: int64(ms.Wins), Valid: true}
		row.MiniSeriesLosses = sql.NullInt64{Int64: int64(ms.Losses), Valid: true}
		row.MiniSeriesTarget = sql.NullInt64{Int64: int64(ms.Target), Valid: true}
		row.MiniSeriesProgress = sql.NullString{String: ms.Progress, Valid: true}
	}
	return row
}
