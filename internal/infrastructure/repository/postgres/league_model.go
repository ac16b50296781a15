package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID         int64        `db:"id"`
	Region     string       `db:"region"`
	Queue      string       `db:"queue"`
	Name       string       `db:"name"`
	Tier       string       `db:"tier"`
	LastUpdate sql.NullTime `db:"last_update"`
	CreatedAt  time.Time    `db:"created_at"`
}

type leagueEntryTableModel struct {
	LeagueID           int64          `db:"league_id"`
	PlayerOrTeamID     string         `db:"player_or_team_id"`
	PlayerOrTeamName   string         `db:"player_or_team_name"`
	Division           string         `db:"division"`
	LeaguePoints       int            `db:"league_points"`
	Wins               int            `db:"wins"`
	Losses             int            `db:"losses"`
	IsFreshBlood       bool           `db:"is_fresh_blood"`
	IsHotStreak        bool           `db:"is_hot_streak"`
	IsInactive         bool           `db:"is_inactive"`
	IsVeteran          bool           `db:"is_veteran"`
	MiniSeriesWins     sql.NullInt64  `db:"mini_series_wins"`
	MiniSeriesLosses   sql.NullInt64  `db:"mini_series_losses"`
	MiniSeriesTarget   sql.NullInt64  `db:"mini_series_target"`
	MiniSeriesProgress sql.NullString `db:"mini_series_progress"`
}
