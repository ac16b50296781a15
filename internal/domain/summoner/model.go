package summoner

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Summoner is a tracked player, unique per (Region, SummonerID) and per
// (Region, StdName).
type Summoner struct {
	Region        string
	SummonerID    int64
	Name          string
	StdName       string
	ProfileIconID int
	SummonerLevel int
	// RevisionDate is nil for summoners only seen inside match payloads.
	RevisionDate      *time.Time
	LastUpdate        time.Time
	LastMatchesUpdate *time.Time
	LastLeaguesUpdate *time.Time
	LastFullUpdate    *time.Time
}

// Partial carries the summoner fields embedded in a match payload.
type Partial struct {
	Region        string
	SummonerID    int64
	Name          string
	ProfileIconID int
}

// NormalizeName lowercases name and strips all whitespace.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Complete reports whether the profile came from a direct fetch.
func (s Summoner) Complete() bool {
	return s.RevisionDate != nil
}

func (s Summoner) Validate() error {
	if strings.TrimSpace(s.Region) == "" {
		return fmt.Errorf("summoner region is required")
	}
	if s.SummonerID <= 0 {
		return fmt.Errorf("summoner id must be > 0")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("summoner name is required")
	}
	if s.StdName != NormalizeName(s.Name) {
		return fmt.Errorf("summoner std name %q does not match name %q", s.StdName, s.Name)
	}
	return nil
}

// WithName sets Name and keeps StdName in sync.
func (s Summoner) WithName(name string) Summoner {
	s.Name = name
	s.StdName = NormalizeName(name)
	return s
}

// ApplyFull overwrites every profile field of existing with incoming, keeping
// the refresh timestamps that incoming does not carry.
func ApplyFull(existing, incoming Summoner) Summoner {
	out := incoming.WithName(incoming.Name)
	if out.LastMatchesUpdate == nil {
		out.LastMatchesUpdate = existing.LastMatchesUpdate
	}
	if out.LastLeaguesUpdate == nil {
		out.LastLeaguesUpdate = existing.LastLeaguesUpdate
	}
	if out.LastFullUpdate == nil {
		out.LastFullUpdate = existing.LastFullUpdate
	}
	return out
}

// MergePartial resolves a match-derived snapshot against the stored row.
// A missing row becomes an incomplete summoner. An existing row only takes
// the partial name and icon once refreshTTL has elapsed since its last
// update; fresher rows are left untouched. The bool reports whether a write
// is needed.
func MergePartial(existing *Summoner, p Partial, refreshTTL time.Duration, now time.Time) (Summoner, bool) {
	if existing == nil {
		return Summoner{
			Region:        p.Region,
			SummonerID:    p.SummonerID,
			ProfileIconID: p.ProfileIconID,
			LastUpdate:    now,
		}.WithName(p.Name), true
	}

	if now.Sub(existing.LastUpdate) <= refreshTTL {
		return *existing, false
	}
	if existing.Name == p.Name && existing.ProfileIconID == p.ProfileIconID {
		return *existing, false
	}

	out := existing.WithName(p.Name)
	out.ProfileIconID = p.ProfileIconID
	out.LastUpdate = now
	return out, true
}

// InvalidQuery records that a name lookup returned not-found.
type InvalidQuery struct {
	Region    string
	StdName   string
	CreatedAt time.Time
}
