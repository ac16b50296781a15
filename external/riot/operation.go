package riot

import "strconv"

const (
	QueueRankedSolo5x5 = "RANKED_SOLO_5x5"
	QueueRankedTeam3x3 = "RANKED_TEAM_3x3"
	QueueRankedTeam5x5 = "RANKED_TEAM_5x5"

	// MaxSummonerIDsPerCall is the id batch size accepted by the summoner endpoint.
	MaxSummonerIDsPerCall = 40
	// MaxLeagueSummonersPerCall is the id batch size accepted by the league endpoint.
	MaxLeagueSummonersPerCall = 10
)

// Operation is one remote call with typed parameters. The set is closed: only
// the types in this file implement it.
type Operation interface {
	Kind() string
	TargetRegion() Region
	// Key identifies the call for logs and task records.
	Key() string
	operation()
}

type GetSummonerByName struct {
	Region Region `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
	Name   string `validate:"required,max=64"`
}

type GetSummonersByID struct {
	Region Region  `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
	IDs    []int64 `validate:"required,min=1,max=40,dive,gt=0"`
}

type GetLeagues struct {
	Region      Region  `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
	SummonerIDs []int64 `validate:"required,min=1,max=10,dive,gt=0"`
}

type GetChallenger struct {
	Region Region `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
	Queue  string `validate:"required,oneof=RANKED_SOLO_5x5 RANKED_TEAM_3x3 RANKED_TEAM_5x5"`
}

type GetMatch struct {
	Region          Region `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
	MatchID         int64  `validate:"gt=0"`
	IncludeTimeline bool
}

type GetMatchList struct {
	Region       Region `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
	SummonerID   int64  `validate:"gt=0"`
	RankedQueues string `validate:"omitempty,oneof=RANKED_SOLO_5x5 RANKED_TEAM_5x5"`
	BeginIndex   int    `validate:"gte=0"`
	EndIndex     int    `validate:"gte=0"`
}

type GetChampionList struct {
	Region Region `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
}

type GetSummonerSpellList struct {
	Region Region `validate:"required,oneof=BR EUNE EUW KR LAN LAS NA OCE RU TR"`
}

func (GetSummonerByName) Kind() string    { return "get_summoner_by_name" }
func (GetSummonersByID) Kind() string     { return "get_summoners_by_id" }
func (GetLeagues) Kind() string           { return "get_leagues" }
func (GetChallenger) Kind() string        { return "get_challenger" }
func (GetMatch) Kind() string             { return "get_match" }
func (GetMatchList) Kind() string         { return "get_match_list" }
func (GetChampionList) Kind() string      { return "get_champion_list" }
func (GetSummonerSpellList) Kind() string { return "get_summoner_spell_list" }

func (o GetSummonerByName) TargetRegion() Region    { return o.Region }
func (o GetSummonersByID) TargetRegion() Region     { return o.Region }
func (o GetLeagues) TargetRegion() Region           { return o.Region }
func (o GetChallenger) TargetRegion() Region        { return o.Region }
func (o GetMatch) TargetRegion() Region             { return o.Region }
func (o GetMatchList) TargetRegion() Region         { return o.Region }
func (o GetChampionList) TargetRegion() Region      { return o.Region }
func (o GetSummonerSpellList) TargetRegion() Region { return o.Region }

func (o GetSummonerByName) Key() string { return string(o.Region) + ":" + o.Name }
func (o GetSummonersByID) Key() string  { return string(o.Region) + ":" + joinIDs(o.IDs) }
func (o GetLeagues) Key() string        { return string(o.Region) + ":" + joinIDs(o.SummonerIDs) }
func (o GetChallenger) Key() string     { return string(o.Region) + ":" + o.Queue }
func (o GetMatch) Key() string {
	return string(o.Region) + ":" + strconv.FormatInt(o.MatchID, 10)
}
func (o GetMatchList) Key() string {
	return string(o.Region) + ":" + strconv.FormatInt(o.SummonerID, 10)
}
func (o GetChampionList) Key() string      { return string(o.Region) }
func (o GetSummonerSpellList) Key() string { return string(o.Region) }

func (GetSummonerByName) operation()    {}
func (GetSummonersByID) operation()     {}
func (GetLeagues) operation()           {}
func (GetChallenger) operation()        {}
func (GetMatch) operation()             {}
func (GetMatchList) operation()         {}
func (GetChampionList) operation()      {}
func (GetSummonerSpellList) operation() {}

func joinIDs(ids []int64) string {
	buf := make([]byte, 0, len(ids)*10)
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, id, 10)
	}
	return string(buf)
}
