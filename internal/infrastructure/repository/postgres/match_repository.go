package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	qb "github.com/riskibarqy/lol-stats/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ExistingIDs(ctx context.Context, region string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := qb.Select("match_id").From("matches").
		Where(
			qb.Eq("region", region),
			qb.Any("match_id", pq.Array(ids)),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build existing match ids query: %w", err)
	}

	var out []int64
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select existing match ids region=%s: %w", region, err)
	}
	return out, nil
}

func (r *MatchRepository) Get(ctx context.Context, region string, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("region", region),
			qb.Eq("match_id", matchID),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match region=%s id=%d: %w", region, matchID, err)
	}

	out := matchFromRow(row)

	var participants []matchParticipantTableModel
	if err := r.selectChildren(ctx, "match_participants", row.ID, &participants); err != nil {
		return match.Match{}, false, err
	}
	for _, p := range participants {
		out.Participants = append(out.Participants, participantFromRow(p))
	}

	var identities []matchIdentityTableModel
	if err := r.selectChildren(ctx, "match_participant_identities", row.ID, &identities); err != nil {
		return match.Match{}, false, err
	}
	for _, ident := range identities {
		out.Identities = append(out.Identities, identityFromRow(region, ident))
	}

	var teams []matchTeamTableModel
	if err := r.selectChildren(ctx, "match_teams", row.ID, &teams); err != nil {
		return match.Match{}, false, err
	}
	for _, t := range teams {
		out.Teams = append(out.Teams, match.Team{
			TeamID:      t.TeamID,
			Winner:      t.Winner,
			FirstBlood:  t.FirstBlood,
			FirstTower:  t.FirstTower,
			TowerKills:  t.TowerKills,
			DragonKills: t.DragonKills,
			BaronKills:  t.BaronKills,
		})
	}

	return out, true, nil
}

func (r *MatchRepository) selectChildren(ctx context.Context, table string, matchRowID int64, dest any) error {
	orderBy := "participant_id"
	if table == "match_teams" {
		orderBy = "team_id"
	}
	query, args, err := qb.Select("*").From(table).
		Where(qb.Eq("match_row_id", matchRowID)).
		OrderBy(orderBy).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select %s query: %w", table, err)
	}
	if err := r.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("select %s match_row_id=%d: %w", table, matchRowID, err)
	}
	return nil
}

// Create inserts the match row first; ON CONFLICT DO NOTHING makes a
// concurrent second writer wait on the unique index and then see no row
// returned, so only one writer goes on to insert children.
func (r *MatchRepository) Create(ctx context.Context, m match.Match, partialRefreshTTL time.Duration, now time.Time) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for match create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertQuery, insertArgs, err := qb.InsertModel("matches", matchToInsertModel(m), "ON CONFLICT (region, match_id) DO NOTHING RETURNING id")
	if err != nil {
		return false, fmt.Errorf("build insert match query: %w", err)
	}

	var matchRowID int64
	if err := tx.QueryRowxContext(ctx, insertQuery, insertArgs...).Scan(&matchRowID); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, mapWriteError(fmt.Sprintf("insert match region=%s id=%d", m.Region, m.MatchID), err)
	}

	for _, p := range m.Players() {
		if err := mergePartialTx(ctx, tx, p, partialRefreshTTL, now); err != nil {
			return false, err
		}
	}

	if len(m.Participants) > 0 {
		rows := make([]matchParticipantTableModel, 0, len(m.Participants))
		for _, p := range m.Participants {
			rows = append(rows, participantToRow(matchRowID, p))
		}
		if err := insertChildren(ctx, tx, "match_participants", rows); err != nil {
			return false, err
		}
	}

	if len(m.Identities) > 0 {
		rows := make([]matchIdentityTableModel, 0, len(m.Identities))
		for _, ident := range m.Identities {
			rows = append(rows, identityToRow(matchRowID, ident))
		}
		if err := insertChildren(ctx, tx, "match_participant_identities", rows); err != nil {
			return false, err
		}
	}

	if len(m.Teams) > 0 {
		rows := make([]matchTeamTableModel, 0, len(m.Teams))
		for _, t := range m.Teams {
			rows = append(rows, matchTeamTableModel{
				MatchRowID:  matchRowID,
				TeamID:      t.TeamID,
				Winner:      t.Winner,
				FirstBlood:  t.FirstBlood,
				FirstTower:  t.FirstTower,
				TowerKills:  t.TowerKills,
				DragonKills: t.DragonKills,
				BaronKills:  t.BaronKills,
			})
		}
		if err := insertChildren(ctx, tx, "match_teams", rows); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit match create tx: %w", err)
	}
	return true, nil
}

func insertChildren[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) error {
	query, args, err := qb.InsertModels(table, rows, "")
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError("insert "+table, err)
	}
	return nil
}

func matchToInsertModel(m match.Match) matchInsertModel {
	return matchInsertModel{
		Region:          m.Region,
		MatchID:         m.MatchID,
		PlatformID:      m.PlatformID,
		MapID:           m.MapID,
		MatchCreation:   m.Creation.UTC(),
		DurationSeconds: int64(m.Duration / time.Second),
		MatchMode:       m.Mode,
		MatchType:       m.Type,
		MatchVersion:    m.Version,
		QueueType:       m.QueueType,
		Season:          m.Season,
	}
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		Region:     row.Region,
		MatchID:    row.MatchID,
		PlatformID: row.PlatformID,
		MapID:      row.MapID,
		Creation:   row.MatchCreation.UTC(),
		Duration:   time.Duration(row.DurationSeconds) * time.Second,
		Mode:       row.MatchMode,
		Type:       row.MatchType,
		Version:    row.MatchVersion,
		QueueType:  row.QueueType,
		Season:     row.Season,
	}
}

func participantToRow(matchRowID int64, p match.Participant) matchParticipantTableModel {
	return matchParticipantTableModel{
		MatchRowID:                matchRowID,
		ParticipantID:             p.ParticipantID,
		TeamID:                    p.TeamID,
		ChampionID:                p.ChampionID,
		Spell1ID:                  p.Spell1ID,
		Spell2ID:                  p.Spell2ID,
		HighestAchievedSeasonTier: p.HighestAchievedSeasonTier,
		Winner:                    p.Winner,
		Kills:                     p.Kills,
		Deaths:                    p.Deaths,
		Assists:                   p.Assists,
		GoldEarned:                p.GoldEarned,
		ChampLevel:                p.ChampLevel,
		MinionsKilled:             p.MinionsKilled,
		Item0:                     p.Items[0],
		Item1:                     p.Items[1],
		Item2:                     p.Items[2],
		Item3:                     p.Items[3],
		Item4:                     p.Items[4],
		Item5:                     p.Items[5],
		Item6:                     p.Items[6],
	}
}

func participantFromRow(row matchParticipantTableModel) match.Participant {
	return match.Participant{
		ParticipantID:             row.ParticipantID,
		TeamID:                    row.TeamID,
		ChampionID:                row.ChampionID,
		Spell1ID:                  row.Spell1ID,
		Spell2ID:                  row.Spell2ID,
		HighestAchievedSeasonTier: row.HighestAchievedSeasonTier,
		Winner:                    row.Winner,
		Kills:                     row.Kills,
		Deaths:                    row.Deaths,
		Assists:                   row.Assists,
		GoldEarned:                row.GoldEarned,
		ChampLevel:                row.ChampLevel,
		MinionsKilled:             row.MinionsKilled,
		Items:                     [7]int{row.Item0, row.Item1, row.Item2, row.Item3, row.Item4, row.Item5, row.Item6},
	}
}

func identityToRow(matchRowID int64, ident match.ParticipantIdentity) matchIdentityTableModel {
	row := matchIdentityTableModel{
		MatchRowID:    matchRowID,
		ParticipantID: ident.ParticipantID,
	}
	if p := ident.Player; p != nil {
		row.SummonerID = sql.NullInt64{Int64: p.SummonerID, Valid: true}
		row.SummonerName = sql.NullString{String: p.Name, Valid: true}
		row.ProfileIconID = sql.NullInt64{Int64: int64(p.ProfileIconID), Valid: true}
	}
	return row
}

func identityFromRow(region string, row matchIdentityTableModel) match.ParticipantIdentity {
	ident := match.ParticipantIdentity{ParticipantID: row.ParticipantID}
	if row.SummonerID.Valid {
		ident.Player = &summoner.Partial{
			Region:        region,
			SummonerID:    row.SummonerID.Int64,
			Name:          row.SummonerName.String,
			ProfileIconID: int(row.ProfileIconID.Int64),
		}
	}
	return ident
}
