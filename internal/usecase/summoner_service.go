package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
	"github.com/riskibarqy/lol-stats/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const defaultInvalidQueryTTL = 10 * time.Second

type LookupResult struct {
	Summoner summoner.Summoner
	State    FreshnessState
	Handles  []executor.Handle
}

type SweepResult struct {
	Checked int
	Handles []executor.Handle
}

// SummonerService decides when summoner data is fetched from the remote API.
type SummonerService struct {
	summoners       summoner.Repository
	invalid         summoner.InvalidQueryRepository
	submitter       TaskSubmitter
	storage         *StorageService
	pipeline        *IngestionPipeline
	policy          FreshnessPolicy
	invalidQueryTTL time.Duration
	flight          resilience.SingleFlight[summoner.Summoner]
	logger          *logging.Logger
	now             func() time.Time
}

func NewSummonerService(
	summoners summoner.Repository,
	invalid summoner.InvalidQueryRepository,
	submitter TaskSubmitter,
	storage *StorageService,
	pipeline *IngestionPipeline,
	policy FreshnessPolicy,
	invalidQueryTTL time.Duration,
	logger *logging.Logger,
) *SummonerService {
	if logger == nil {
		logger = logging.Default()
	}
	if invalidQueryTTL <= 0 {
		invalidQueryTTL = defaultInvalidQueryTTL
	}
	return &SummonerService{
		summoners:       summoners,
		invalid:         invalid,
		submitter:       submitter,
		storage:         storage,
		pipeline:        pipeline,
		policy:          policy,
		invalidQueryTTL: invalidQueryTTL,
		logger:          logger.Named("summoner"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Lookup resolves a summoner by name. Known summoners are returned at once
// with background refreshes for whatever is due. Unknown names block on a
// single remote fetch shared by concurrent callers.
func (s *SummonerService) Lookup(ctx context.Context, region, name string) (LookupResult, error) {
	ctx, span := startSpan(ctx, "usecase.SummonerService.Lookup", regionAttr(region))
	defer span.End()

	r, err := riot.ParseRegion(region)
	if err != nil {
		return LookupResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	region = r.String()
	name = strings.TrimSpace(name)
	std := summoner.NormalizeName(name)
	if std == "" {
		return LookupResult{}, fmt.Errorf("%w: summoner name is required", ErrInvalidInput)
	}

	existing, ok, err := s.summoners.GetByStdName(ctx, region, std)
	if err != nil {
		return LookupResult{}, fmt.Errorf("get summoner by name: %w", err)
	}
	if ok {
		now := s.now()
		return LookupResult{
			Summoner: existing,
			State:    s.policy.State(&existing, now),
			Handles:  s.submitDue(ctx, existing, now),
		}, nil
	}

	recent, err := s.invalid.IsRecent(ctx, region, std, s.invalidQueryTTL, s.now())
	if err != nil {
		return LookupResult{}, fmt.Errorf("check invalid query: %w", err)
	}
	if recent {
		return LookupResult{}, fmt.Errorf("%w: %s/%s", ErrSummonerNotFound, region, name)
	}

	stored, err, shared := s.flight.Do(region+":"+std, func() (summoner.Summoner, error) {
		return s.firstFetch(context.WithoutCancel(ctx), region, name, std)
	})
	if err != nil {
		return LookupResult{}, err
	}
	if shared {
		return LookupResult{Summoner: stored, State: s.policy.State(&stored, s.now())}, nil
	}

	return LookupResult{
		Summoner: stored,
		State:    s.policy.State(&stored, s.now()),
		Handles:  s.pipeline.DataPull(ctx, region, stored.SummonerID),
	}, nil
}

func (s *SummonerService) firstFetch(ctx context.Context, region, name, std string) (summoner.Summoner, error) {
	var (
		notFound  atomic.Bool
		fetchedID atomic.Int64
	)
	op := riot.GetSummonerByName{Region: riot.Region(region), Name: name}
	h := s.submitter.Submit(ctx, op, func(ctx context.Context, res riot.Result, callErr error) error {
		if callErr != nil {
			if !riot.IsNotFound(callErr) {
				return nil
			}
			notFound.Store(true)
			q := summoner.InvalidQuery{Region: region, StdName: std, CreatedAt: s.now()}
			if err := s.invalid.Record(ctx, q, s.invalidQueryTTL); err != nil {
				return fmt.Errorf("record invalid query: %w", err)
			}
			return nil
		}
		m, ok := res.(riot.SummonerMap)
		if !ok {
			return fmt.Errorf("unexpected result %T for summoner by name", res)
		}
		for _, key := range sortedKeys(m) {
			if m[key].ID > 0 {
				fetchedID.Store(m[key].ID)
				break
			}
		}
		_, err := s.storage.StoreSummoners(ctx, region, m)
		return err
	})

	records, err := s.submitter.Wait(ctx, h)
	if err != nil {
		return summoner.Summoner{}, fmt.Errorf("%w: wait summoner fetch: %v", ErrDependencyUnavailable, err)
	}
	if notFound.Load() {
		return summoner.Summoner{}, fmt.Errorf("%w: %s/%s", ErrSummonerNotFound, region, name)
	}
	if len(records) != 1 || records[0].Status != task.StatusSuccess {
		lastErr := ""
		if len(records) == 1 {
			lastErr = records[0].LastError
		}
		return summoner.Summoner{}, fmt.Errorf("%w: summoner fetch failed: %s", ErrDependencyUnavailable, lastErr)
	}

	stored, ok, err := s.summoners.GetByStdName(ctx, region, std)
	if err != nil {
		return summoner.Summoner{}, fmt.Errorf("get summoner by name: %w", err)
	}
	if ok {
		return stored, nil
	}
	if id := fetchedID.Load(); id > 0 {
		stored, ok, err = s.summoners.GetByID(ctx, region, id)
		if err != nil {
			return summoner.Summoner{}, fmt.Errorf("get summoner by id: %w", err)
		}
		if ok {
			return stored, nil
		}
	}
	return summoner.Summoner{}, fmt.Errorf("%w: %s/%s", ErrSummonerNotFound, region, name)
}

// Refresh runs a user-initiated full query, subject to the refresh cooldown.
func (s *SummonerService) Refresh(ctx context.Context, region string, summonerID int64) ([]executor.Handle, error) {
	ctx, span := startSpan(ctx, "usecase.SummonerService.Refresh", regionAttr(region), attribute.Int64("lol.summoner_id", summonerID))
	defer span.End()

	current, err := s.get(ctx, region, summonerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !s.policy.IsRefreshable(current, now) {
		return nil, fmt.Errorf("%w: summoner %d", ErrRefreshCooldown, summonerID)
	}

	handles := s.pipeline.FullQuery(ctx, current.Region, current.SummonerID)
	if err := s.summoners.TouchFullUpdate(ctx, current.Region, current.SummonerID, now); err != nil {
		return handles, fmt.Errorf("touch full update: %w", err)
	}
	return handles, nil
}

// RefreshDue submits only the parts whose TTL elapsed.
func (s *SummonerService) RefreshDue(ctx context.Context, region string, summonerID int64) ([]executor.Handle, error) {
	ctx, span := startSpan(ctx, "usecase.SummonerService.RefreshDue", regionAttr(region), attribute.Int64("lol.summoner_id", summonerID))
	defer span.End()

	current, err := s.get(ctx, region, summonerID)
	if err != nil {
		return nil, err
	}
	return s.submitDue(ctx, current, s.now()), nil
}

// Sweep refreshes the stalest known summoners of a region.
func (s *SummonerService) Sweep(ctx context.Context, region string, limit int) (SweepResult, error) {
	ctx, span := startSpan(ctx, "usecase.SummonerService.Sweep", regionAttr(region))
	defer span.End()

	now := s.now()
	cfg := s.policy.Config()
	olderThan := now.Add(-min(cfg.SummonerTTL, cfg.MatchesTTL, cfg.LeaguesTTL))
	stale, err := s.summoners.ListStale(ctx, region, olderThan, limit)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list stale summoners: %w", err)
	}

	var result SweepResult
	for _, item := range stale {
		result.Checked++
		result.Handles = append(result.Handles, s.submitDue(ctx, item, now)...)
	}
	if result.Checked > 0 {
		s.logger.InfoContext(ctx, "summoner sweep submitted", "region", region, "checked", result.Checked, "tasks", len(result.Handles))
	}
	return result, nil
}

func (s *SummonerService) submitDue(ctx context.Context, current summoner.Summoner, now time.Time) []executor.Handle {
	due := s.policy.Due(current, now)
	if !due.Any() {
		return nil
	}

	var handles []executor.Handle
	if due.Profile {
		handles = append(handles, s.pipeline.FetchSummoners(ctx, current.Region, []int64{current.SummonerID})...)
	}
	if due.Matches {
		handles = append(handles, s.pipeline.FetchMatchList(ctx, current.Region, current.SummonerID))
	}
	if due.Leagues {
		handles = append(handles, s.pipeline.FetchLeagues(ctx, current.Region, []int64{current.SummonerID})...)
	}
	s.logger.DebugContext(ctx, "summoner refresh submitted",
		"region", current.Region,
		"summoner_id", current.SummonerID,
		"profile", due.Profile,
		"matches", due.Matches,
		"leagues", due.Leagues,
	)
	return handles
}

func (s *SummonerService) get(ctx context.Context, region string, summonerID int64) (summoner.Summoner, error) {
	r, err := riot.ParseRegion(region)
	if err != nil {
		return summoner.Summoner{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if summonerID <= 0 {
		return summoner.Summoner{}, fmt.Errorf("%w: summoner id must be > 0", ErrInvalidInput)
	}
	current, ok, err := s.summoners.GetByID(ctx, r.String(), summonerID)
	if err != nil {
		return summoner.Summoner{}, fmt.Errorf("get summoner by id: %w", err)
	}
	if !ok {
		return summoner.Summoner{}, fmt.Errorf("%w: summoner %d", ErrSummonerNotFound, summonerID)
	}
	return current, nil
}

