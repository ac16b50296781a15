package league

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const teamIDPrefix = "TEAM-"

// Key is the natural identity of a ranked league.
type Key struct {
	Region string
	Queue  string
	Name   string
	Tier   string
}

func (k Key) Validate() error {
	if strings.TrimSpace(k.Region) == "" {
		return fmt.Errorf("league region is required")
	}
	if strings.TrimSpace(k.Queue) == "" {
		return fmt.Errorf("league queue is required")
	}
	if strings.TrimSpace(k.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if strings.TrimSpace(k.Tier) == "" {
		return fmt.Errorf("league tier is required")
	}
	return nil
}

func (k Key) String() string {
	return k.Region + "/" + k.Queue + "/" + k.Tier + "/" + k.Name
}

type League struct {
	Key
	LastUpdate *time.Time
}

// Entry is one standing row, unique per (league, PlayerOrTeamID).
type Entry struct {
	PlayerOrTeamID   string
	PlayerOrTeamName string
	Division         string
	LeaguePoints     int
	Wins             int
	Losses           int
	IsFreshBlood     bool
	IsHotStreak      bool
	IsInactive       bool
	IsVeteran        bool
	MiniSeries       *MiniSeries
}

type MiniSeries struct {
	Wins     int
	Losses   int
	Target   int
	Progress string
}

func (e Entry) IsTeam() bool {
	return strings.HasPrefix(e.PlayerOrTeamID, teamIDPrefix)
}

// SummonerID parses the entry owner as a summoner id. Team entries and
// malformed ids report false.
func (e Entry) SummonerID() (int64, bool) {
	if e.IsTeam() {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(e.PlayerOrTeamID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// DedupEntries keeps the last entry per PlayerOrTeamID, preserving first-seen order.
func DedupEntries(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.PlayerOrTeamID]; ok {
			out[i] = e
			continue
		}
		index[e.PlayerOrTeamID] = len(out)
		out = append(out, e)
	}
	return out
}

// UpdateDue reports whether a league last updated at lastUpdate may be
// replaced at now.
func UpdateDue(lastUpdate *time.Time, minInterval time.Duration, now time.Time) bool {
	if lastUpdate == nil {
		return true
	}
	return now.Sub(*lastUpdate) >= minInterval
}
