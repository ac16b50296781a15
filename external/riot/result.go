package riot

// Result is the typed payload of a successful call. Each Operation maps to
// exactly one Result type:
//
//	GetSummonerByName, GetSummonersByID -> SummonerMap
//	GetLeagues                          -> LeagueMap
//	GetChallenger                       -> League
//	GetMatch                            -> MatchDetail
//	GetMatchList                        -> MatchList
//	GetChampionList                     -> ChampionList
//	GetSummonerSpellList                -> SpellList
type Result interface {
	result()
}

// SummonerMap is keyed by the normalized name (by-name lookups) or the
// summoner id (by-id lookups).
type SummonerMap map[string]Summoner

type Summoner struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	// RevisionDate is epoch milliseconds.
	RevisionDate  int64 `json:"revisionDate"`
	SummonerLevel int   `json:"summonerLevel"`
}

// LeagueMap is keyed by summoner id. A summoner without ranked standing has
// no key at all.
type LeagueMap map[string][]League

type League struct {
	Name          string        `json:"name"`
	Tier          string        `json:"tier"`
	Queue         string        `json:"queue"`
	ParticipantID string        `json:"participantId"`
	Entries       []LeagueEntry `json:"entries"`
}

type LeagueEntry struct {
	PlayerOrTeamID   string      `json:"playerOrTeamId"`
	PlayerOrTeamName string      `json:"playerOrTeamName"`
	Division         string      `json:"division"`
	LeaguePoints     int         `json:"leaguePoints"`
	Wins             int         `json:"wins"`
	Losses           int         `json:"losses"`
	IsFreshBlood     bool        `json:"isFreshBlood"`
	IsHotStreak      bool        `json:"isHotStreak"`
	IsInactive       bool        `json:"isInactive"`
	IsVeteran        bool        `json:"isVeteran"`
	MiniSeries       *MiniSeries `json:"miniSeries,omitempty"`
}

type MiniSeries struct {
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Target   int    `json:"target"`
	Progress string `json:"progress"`
}

type MatchDetail struct {
	MatchID               int64                 `json:"matchId"`
	Region                string                `json:"region"`
	PlatformID            string                `json:"platformId"`
	MapID                 int                   `json:"mapId"`
	MatchCreation         int64                 `json:"matchCreation"`
	MatchDuration         int64                 `json:"matchDuration"`
	MatchMode             string                `json:"matchMode"`
	MatchType             string                `json:"matchType"`
	MatchVersion          string                `json:"matchVersion"`
	QueueType             string                `json:"queueType"`
	Season                string                `json:"season"`
	Participants          []Participant         `json:"participants"`
	ParticipantIdentities []ParticipantIdentity `json:"participantIdentities"`
	Teams                 []Team                `json:"teams"`
}

type Participant struct {
	ParticipantID             int              `json:"participantId"`
	TeamID                    int              `json:"teamId"`
	ChampionID                int              `json:"championId"`
	Spell1ID                  int              `json:"spell1Id"`
	Spell2ID                  int              `json:"spell2Id"`
	HighestAchievedSeasonTier string           `json:"highestAchievedSeasonTier"`
	Stats                     ParticipantStats `json:"stats"`
}

type ParticipantStats struct {
	Winner        bool  `json:"winner"`
	Kills         int   `json:"kills"`
	Deaths        int   `json:"deaths"`
	Assists       int   `json:"assists"`
	GoldEarned    int64 `json:"goldEarned"`
	ChampLevel    int   `json:"champLevel"`
	MinionsKilled int   `json:"minionsKilled"`
	Item0         int   `json:"item0"`
	Item1         int   `json:"item1"`
	Item2         int   `json:"item2"`
	Item3         int   `json:"item3"`
	Item4         int   `json:"item4"`
	Item5         int   `json:"item5"`
	Item6         int   `json:"item6"`
}

type ParticipantIdentity struct {
	ParticipantID int     `json:"participantId"`
	Player        *Player `json:"player,omitempty"`
}

// Player is the strict subset of summoner fields carried inside a match.
type Player struct {
	SummonerID      int64  `json:"summonerId"`
	SummonerName    string `json:"summonerName"`
	ProfileIcon     int    `json:"profileIcon"`
	MatchHistoryURI string `json:"matchHistoryUri"`
}

type Team struct {
	TeamID      int  `json:"teamId"`
	Winner      bool `json:"winner"`
	FirstBlood  bool `json:"firstBlood"`
	FirstTower  bool `json:"firstTower"`
	TowerKills  int  `json:"towerKills"`
	DragonKills int  `json:"dragonKills"`
	BaronKills  int  `json:"baronKills"`
}

// MatchList references are ordered newest first.
type MatchList struct {
	Matches    []MatchReference `json:"matches"`
	StartIndex int              `json:"startIndex"`
	EndIndex   int              `json:"endIndex"`
	TotalGames int              `json:"totalGames"`
}

type MatchReference struct {
	MatchID    int64  `json:"matchId"`
	Champion   int    `json:"champion"`
	Lane       string `json:"lane"`
	Role       string `json:"role"`
	Queue      string `json:"queue"`
	Season     string `json:"season"`
	PlatformID string `json:"platformId"`
	Region     string `json:"region"`
	// Timestamp is epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

type ChampionList struct {
	Type    string              `json:"type"`
	Version string              `json:"version"`
	Data    map[string]Champion `json:"data"`
}

type Champion struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type SpellList struct {
	Type    string           `json:"type"`
	Version string           `json:"version"`
	Data    map[string]Spell `json:"data"`
}

type Spell struct {
	ID            int    `json:"id"`
	Key           string `json:"key"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	SummonerLevel int    `json:"summonerLevel"`
}

func (SummonerMap) result()  {}
func (LeagueMap) result()    {}
func (League) result()       {}
func (MatchDetail) result()  {}
func (MatchList) result()    {}
func (ChampionList) result() {}
func (SpellList) result()    {}
