package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID              int64     `db:"id"`
	Region          string    `db:"region"`
	MatchID         int64     `db:"match_id"`
	PlatformID      string    `db:"platform_id"`
	MapID           int       `db:"map_id"`
	MatchCreation   time.Time `db:"match_creation"`
	DurationSeconds int64     `db:"match_duration_seconds"`
	MatchMode       string    `db:"match_mode"`
	MatchType       string    `db:"match_type"`
	MatchVersion    string    `db:"match_version"`
	QueueType       string    `db:"queue_type"`
	Season          string    `db:"season"`
	CreatedAt       time.Time `db:"created_at"`
}

type matchInsertModel struct {
	Region          string    `db:"region"`
	MatchID         int64     `db:"match_id"`
	PlatformID      string    `db:"platform_id"`
	MapID           int       `db:"map_id"`
	MatchCreation   time.Time `db:"match_creation"`
	DurationSeconds int64     `db:"match_duration_seconds"`
	MatchMode       string    `db:"match_mode"`
	MatchType       string    `db:"match_type"`
	MatchVersion    string    `db:"match_version"`
	QueueType       string    `db:"queue_type"`
	Season          string    `db:"season"`
}

type matchParticipantTableModel struct {
	MatchRowID                int64  `db:"match_row_id"`
	ParticipantID             int    `db:"participant_id"`
	TeamID                    int    `db:"team_id"`
	ChampionID                int    `db:"champion_id"`
	Spell1ID                  int    `db:"spell1_id"`
	Spell2ID                  int    `db:"spell2_id"`
	HighestAchievedSeasonTier string `db:"highest_achieved_season_tier"`
	Winner                    bool   `db:"winner"`
	Kills                     int    `db:"kills"`
	Deaths                    int    `db:"deaths"`
	Assists                   int    `db:"assists"`
	GoldEarned                int64  `db:"gold_earned"`
	ChampLevel                int    `db:"champ_level"`
	MinionsKilled             int    `db:"minions_killed"`
	Item0                     int    `db:"item0"`
	Item1                     int    `db:"item1"`
	Item2                     int    `db:"item2"`
	Item3                     int    `db:"item3"`
	Item4                     int    `db:"item4"`
	Item5                     int    `db:"item5"`
	Item6                     int    `db:"item6"`
}

type matchIdentityTableModel struct {
	MatchRowID    int64          `db:"match_row_id"`
	ParticipantID int            `db:"participant_id"`
	SummonerID    sql.NullInt64  `db:"summoner_id"`
	SummonerName  sql.NullString `db:"summoner_name"`
	ProfileIconID sql.NullInt64  `db:"profile_icon_id"`
}

type matchTeamTableModel struct {
	MatchRowID  int64 `db:"match_row_id"`
	TeamID      int   `db:"team_id"`
	Winner      bool  `db:"winner"`
	FirstBlood  bool  `db:"first_blood"`
	FirstTower  bool  `db:"first_tower"`
	TowerKills  int   `db:"tower_kills"`
	DragonKills int   `db:"dragon_kills"`
	BaronKills  int   `db:"baron_kills"`
}
