package memory

import (
	"sync"

	"github.com/riskibarqy/lol-stats/internal/domain/league"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
)

type summonerKey struct {
	region string
	id     int64
}

type matchKey struct {
	region string
	id     int64
}

type leagueState struct {
	league  league.League
	entries []league.Entry
}

// Store is a process-local relational stand-in. One mutex guards every
// table so multi-table writes such as match creation stay atomic.
type Store struct {
	mu        sync.Mutex
	summoners map[summonerKey]summoner.Summoner
	byStdName map[string]summonerKey
	leagues   map[league.Key]*leagueState
	matches   map[matchKey]match.Match
	champions map[int]staticdata.Champion
	spells    map[int]staticdata.Spell
	tasks     map[string]task.Event
}

func NewStore() *Store {
	return &Store{
		summoners: make(map[summonerKey]summoner.Summoner),
		byStdName: make(map[string]summonerKey),
		leagues:   make(map[league.Key]*leagueState),
		matches:   make(map[matchKey]match.Match),
		champions: make(map[int]staticdata.Champion),
		spells:    make(map[int]staticdata.Spell),
		tasks:     make(map[string]task.Event),
	}
}

func (s *Store) Summoners() *SummonerRepository {
	return &SummonerRepository{store: s}
}

func (s *Store) Leagues() *LeagueRepository {
	return &LeagueRepository{store: s}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

func (s *Store) StaticData() *StaticDataRepository {
	return &StaticDataRepository{store: s}
}

func (s *Store) TaskDispatches() *TaskDispatchRepository {
	return &TaskDispatchRepository{store: s}
}

func stdNameKey(region, stdName string) string {
	return region + "\x00" + stdName
}
