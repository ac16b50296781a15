package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/league"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/shared"
	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

const (
	defaultLeagueMinUpdateInterval = 60 * time.Second
	defaultPartialRefreshTTL       = 7 * 24 * time.Hour
)

type StorageConfig struct {
	LeagueMinUpdateInterval time.Duration
	PartialRefreshTTL       time.Duration
}

// UpsertCounts aggregates the outcome of a bulk summoner store.
type UpsertCounts struct {
	Created int
	Updated int
}

type LeagueCounts struct {
	Replaced int
	Skipped  int
	Touched  int
}

// StorageService persists remote payloads. Every method is safe to call
// repeatedly with the same payload.
type StorageService struct {
	summoners summoner.Repository
	leagues   league.Repository
	matches   match.Repository
	static    staticdata.Repository
	cfg       StorageConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewStorageService(
	summoners summoner.Repository,
	leagues league.Repository,
	matches match.Repository,
	static staticdata.Repository,
	cfg StorageConfig,
	logger *logging.Logger,
) *StorageService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LeagueMinUpdateInterval <= 0 {
		cfg.LeagueMinUpdateInterval = defaultLeagueMinUpdateInterval
	}
	if cfg.PartialRefreshTTL <= 0 {
		cfg.PartialRefreshTTL = defaultPartialRefreshTTL
	}
	return &StorageService{
		summoners: summoners,
		leagues:   leagues,
		matches:   matches,
		static:    static,
		cfg:       cfg,
		logger:    logger.Named("storage"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *StorageService) StoreSummoner(ctx context.Context, region string, in riot.Summoner) (bool, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreSummoner", regionAttr(region))
	defer span.End()

	row := summonerFromRiot(region, in, s.now())
	if err := row.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	created, err := s.summoners.Upsert(ctx, row)
	if err != nil {
		return false, fmt.Errorf("upsert summoner id=%d: %w", in.ID, err)
	}
	return created, nil
}

// StoreSummoners upserts every profile in res. Conflicts on the normalized
// name are skipped; the remaining rows are still written.
func (s *StorageService) StoreSummoners(ctx context.Context, region string, res riot.SummonerMap) (UpsertCounts, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreSummoners", regionAttr(region))
	defer span.End()

	var counts UpsertCounts
	for _, key := range sortedKeys(res) {
		created, err := s.StoreSummoner(ctx, region, res[key])
		switch {
		case errors.Is(err, shared.ErrConflict):
			s.logger.DebugContext(ctx, "summoner already stored by another writer", "region", region, "key", key, "error", err)
			continue
		case errors.Is(err, ErrInvalidInput):
			s.logger.WarnContext(ctx, "skip invalid summoner payload", "region", region, "key", key, "error", err)
			continue
		case err != nil:
			return counts, err
		}
		if created {
			counts.Created++
		} else {
			counts.Updated++
		}
	}

	if counts.Created == 0 && counts.Updated == 0 {
		s.logger.WarnContext(ctx, "summoner store changed nothing", "region", region, "payload_size", len(res))
	}
	return counts, nil
}

// StoreLeagues replaces each league in res and stamps the league refresh of
// every referenced summoner. Requested ids without standing are stamped too.
func (s *StorageService) StoreLeagues(ctx context.Context, region string, requested []int64, res riot.LeagueMap) (LeagueCounts, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreLeagues", regionAttr(region))
	defer span.End()

	now := s.now()
	var counts LeagueCounts
	touch := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		if id > 0 {
			touch[id] = struct{}{}
		}
	}

	seen := make(map[league.Key]struct{})
	for _, key := range sortedKeys(res) {
		for _, l := range res[key] {
			k := leagueKeyFromRiot(region, l)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}

			entries := leagueEntriesFromRiot(l.Entries)
			replaced, err := s.replaceLeague(ctx, k, entries, now)
			if err != nil {
				return counts, err
			}
			if !replaced {
				counts.Skipped++
				continue
			}
			counts.Replaced++
			for _, e := range entries {
				if id, ok := e.SummonerID(); ok {
					touch[id] = struct{}{}
				}
			}
		}
	}

	touched, err := s.touchLeagues(ctx, region, touch, now)
	if err != nil {
		return counts, err
	}
	counts.Touched = touched
	return counts, nil
}

// StoreLeague stores a single league payload such as a challenger ladder.
func (s *StorageService) StoreLeague(ctx context.Context, region string, in riot.League) (bool, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreLeague", regionAttr(region))
	defer span.End()

	now := s.now()
	k := leagueKeyFromRiot(region, in)
	entries := leagueEntriesFromRiot(in.Entries)
	replaced, err := s.replaceLeague(ctx, k, entries, now)
	if err != nil || !replaced {
		return replaced, err
	}

	touch := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if id, ok := e.SummonerID(); ok {
			touch[id] = struct{}{}
		}
	}
	if _, err := s.touchLeagues(ctx, region, touch, now); err != nil {
		return true, err
	}
	return true, nil
}

func (s *StorageService) replaceLeague(ctx context.Context, k league.Key, entries []league.Entry, now time.Time) (bool, error) {
	if err := k.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	replaced, err := s.leagues.ReplaceEntries(ctx, k, entries, s.cfg.LeagueMinUpdateInterval, now)
	if errors.Is(err, shared.ErrConflict) {
		s.logger.DebugContext(ctx, "league already replaced by another writer", "league", k.String(), "error", err)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("replace league %s: %w", k.String(), err)
	}
	if !replaced {
		s.logger.DebugContext(ctx, "league updated recently, skip replace", "league", k.String())
	}
	return replaced, nil
}

func (s *StorageService) touchLeagues(ctx context.Context, region string, ids map[int64]struct{}, now time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	list := make([]int64, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	n, err := s.summoners.TouchLeaguesUpdate(ctx, region, list, now)
	if err != nil {
		return 0, fmt.Errorf("touch leagues update: %w", err)
	}
	return n, nil
}

// StoreMatch creates the match when absent and resolves every participant
// summoner. It reports whether this call created the match.
func (s *StorageService) StoreMatch(ctx context.Context, region string, in riot.MatchDetail) (bool, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreMatch", regionAttr(region))
	defer span.End()

	m := matchFromRiot(region, in)
	if err := m.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.matches.Create(ctx, m, s.cfg.PartialRefreshTTL, s.now())
	if errors.Is(err, shared.ErrConflict) {
		s.logger.DebugContext(ctx, "match already stored by another writer", "region", region, "match_id", m.MatchID, "error", err)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create match id=%d: %w", m.MatchID, err)
	}
	if !created {
		s.logger.DebugContext(ctx, "match already stored", "region", region, "match_id", m.MatchID)
	}
	return created, nil
}

// StoreChampions adds champions not stored yet.
func (s *StorageService) StoreChampions(ctx context.Context, res riot.ChampionList) (int, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreChampions")
	defer span.End()

	added, err := s.static.AddChampions(ctx, championsFromRiot(res))
	if err != nil {
		return 0, fmt.Errorf("add champions: %w", err)
	}
	return added, nil
}

// StoreSpells replaces the whole spell table.
func (s *StorageService) StoreSpells(ctx context.Context, res riot.SpellList) (int, error) {
	ctx, span := startSpan(ctx, "usecase.StorageService.StoreSpells")
	defer span.End()

	n, err := s.static.ReplaceSpells(ctx, spellsFromRiot(res))
	if err != nil {
		return 0, fmt.Errorf("replace spells: %w", err)
	}
	return n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
