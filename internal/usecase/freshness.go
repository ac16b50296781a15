package usecase

import (
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
)

const (
	defaultSummonerTTL     = 20 * time.Minute
	defaultMatchesTTL      = 15 * time.Minute
	defaultLeaguesTTL      = 20 * time.Minute
	defaultRefreshCooldown = 30 * time.Minute
)

type FreshnessState string

const (
	FreshnessUnknown         FreshnessState = "unknown"
	FreshnessKnownIncomplete FreshnessState = "known_incomplete"
	FreshnessKnownFresh      FreshnessState = "known_fresh"
	FreshnessKnownStale      FreshnessState = "known_stale"
)

type FreshnessConfig struct {
	SummonerTTL     time.Duration
	MatchesTTL      time.Duration
	LeaguesTTL      time.Duration
	RefreshCooldown time.Duration
}

// Due lists which parts of a summoner need a background refresh.
type Due struct {
	Profile bool
	Matches bool
	Leagues bool
}

func (d Due) Any() bool {
	return d.Profile || d.Matches || d.Leagues
}

type FreshnessPolicy struct {
	cfg FreshnessConfig
}

func NewFreshnessPolicy(cfg FreshnessConfig) FreshnessPolicy {
	if cfg.SummonerTTL <= 0 {
		cfg.SummonerTTL = defaultSummonerTTL
	}
	if cfg.MatchesTTL <= 0 {
		cfg.MatchesTTL = defaultMatchesTTL
	}
	if cfg.LeaguesTTL <= 0 {
		cfg.LeaguesTTL = defaultLeaguesTTL
	}
	if cfg.RefreshCooldown <= 0 {
		cfg.RefreshCooldown = defaultRefreshCooldown
	}
	return FreshnessPolicy{cfg: cfg}
}

func (p FreshnessPolicy) Config() FreshnessConfig {
	return p.cfg
}

// Due compares each refresh timestamp against its TTL. The profile ages from
// LastUpdate; incomplete summoners always need their profile.
func (p FreshnessPolicy) Due(s summoner.Summoner, now time.Time) Due {
	return Due{
		Profile: !s.Complete() || expired(&s.LastUpdate, p.cfg.SummonerTTL, now),
		Matches: expired(s.LastMatchesUpdate, p.cfg.MatchesTTL, now),
		Leagues: expired(s.LastLeaguesUpdate, p.cfg.LeaguesTTL, now),
	}
}

func (p FreshnessPolicy) State(s *summoner.Summoner, now time.Time) FreshnessState {
	switch {
	case s == nil:
		return FreshnessUnknown
	case !s.Complete():
		return FreshnessKnownIncomplete
	case p.Due(*s, now).Any():
		return FreshnessKnownStale
	default:
		return FreshnessKnownFresh
	}
}

// IsRefreshable reports whether a user-initiated refresh is allowed. Only
// user refreshes stamp LastFullUpdate, so background refreshes never hold
// the cooldown.
func (p FreshnessPolicy) IsRefreshable(s summoner.Summoner, now time.Time) bool {
	return expired(s.LastFullUpdate, p.cfg.RefreshCooldown, now)
}

func expired(at *time.Time, ttl time.Duration, now time.Time) bool {
	if at == nil {
		return true
	}
	return now.Sub(*at) > ttl
}
