package postgres

import (
	"database/sql"
	"time"
)

type summonerTableModel struct {
	ID                int64         `db:"id"`
	Region            string        `db:"region"`
	SummonerID        int64         `db:"summoner_id"`
	Name              string        `db:"name"`
	StdName           string        `db:"std_name"`
	ProfileIconID     int           `db:"profile_icon_id"`
	SummonerLevel     sql.NullInt64 `db:"summoner_level"`
	RevisionDate      sql.NullTime  `db:"revision_date"`
	LastUpdate        time.Time     `db:"last_update"`
	LastMatchesUpdate sql.NullTime  `db:"last_matches_update"`
	LastLeaguesUpdate sql.NullTime  `db:"last_leagues_update"`
	LastFullUpdate    sql.NullTime  `db:"last_full_update"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

type summonerInsertModel struct {
	Region            string        `db:"region"`
	SummonerID        int64         `db:"summoner_id"`
	Name              string        `db:"name"`
	StdName           string        `db:"std_name"`
	ProfileIconID     int           `db:"profile_icon_id"`
	SummonerLevel     sql.NullInt64 `db:"summoner_level"`
	RevisionDate      sql.NullTime  `db:"revision_date"`
	LastUpdate        time.Time     `db:"last_update"`
	LastMatchesUpdate sql.NullTime  `db:"last_matches_update"`
	LastLeaguesUpdate sql.NullTime  `db:"last_leagues_update"`
	LastFullUpdate    sql.NullTime  `db:"last_full_update"`
}

type invalidQueryTableModel struct {
	Region    string    `db:"region"`
	StdName   string    `db:"std_name"`
	CreatedAt time.Time `db:"created_at"`
}
