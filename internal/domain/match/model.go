package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
)

// Match is a completed game, unique per (Region, MatchID).
type Match struct {
	Region       string
	MatchID      int64
	PlatformID   string
	MapID        int
	Creation     time.Time
	Duration     time.Duration
	Mode         string
	Type         string
	Version      string
	QueueType    string
	Season       string
	Participants []Participant
	Identities   []ParticipantIdentity
	Teams        []Team
}

type Participant struct {
	ParticipantID             int
	TeamID                    int
	ChampionID                int
	Spell1ID                  int
	Spell2ID                  int
	HighestAchievedSeasonTier string
	Winner                    bool
	Kills                     int
	Deaths                    int
	Assists                   int
	GoldEarned                int64
	ChampLevel                int
	MinionsKilled             int
	Items                     [7]int
}

// ParticipantIdentity links a participant slot to a summoner. Player is nil
// for anonymized slots.
type ParticipantIdentity struct {
	ParticipantID int
	Player        *summoner.Partial
}

type Team struct {
	TeamID      int
	Winner      bool
	FirstBlood  bool
	FirstTower  bool
	TowerKills  int
	DragonKills int
	BaronKills  int
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.Region) == "" {
		return fmt.Errorf("match region is required")
	}
	if m.MatchID <= 0 {
		return fmt.Errorf("match id must be > 0")
	}
	seen := make(map[int]struct{}, len(m.Participants))
	for _, p := range m.Participants {
		if _, dup := seen[p.ParticipantID]; dup {
			return fmt.Errorf("duplicate participant id %d", p.ParticipantID)
		}
		seen[p.ParticipantID] = struct{}{}
	}
	for _, ident := range m.Identities {
		if ident.Player != nil && ident.Player.SummonerID <= 0 {
			return fmt.Errorf("participant %d has invalid summoner id", ident.ParticipantID)
		}
	}
	return nil
}

// Players returns the identified summoners of the match.
func (m Match) Players() []summoner.Partial {
	out := make([]summoner.Partial, 0, len(m.Identities))
	for _, ident := range m.Identities {
		if ident.Player == nil {
			continue
		}
		p := *ident.Player
		p.Region = m.Region
		out = append(out, p)
	}
	return out
}
