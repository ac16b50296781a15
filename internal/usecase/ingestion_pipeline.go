package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

// TaskSubmitter is the caller side of the rate-limited executor.
type TaskSubmitter interface {
	Submit(ctx context.Context, op riot.Operation, then executor.Callback) executor.Handle
	Wait(ctx context.Context, handles ...executor.Handle) ([]executor.Record, error)
}

// IngestionPipeline submits remote fetches and routes each result to its
// storage callback.
type IngestionPipeline struct {
	submitter TaskSubmitter
	storage   *StorageService
	fanout    *MatchFanOut
	summoners summoner.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewIngestionPipeline(
	submitter TaskSubmitter,
	storage *StorageService,
	fanout *MatchFanOut,
	summoners summoner.Repository,
	logger *logging.Logger,
) *IngestionPipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionPipeline{
		submitter: submitter,
		storage:   storage,
		fanout:    fanout,
		summoners: summoners,
		logger:    logger.Named("pipeline"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// FetchSummoners refreshes profiles by id, batched per call limit. A
// not-found answer stamps last_update so the chunk waits out the profile TTL.
func (p *IngestionPipeline) FetchSummoners(ctx context.Context, region string, ids []int64) []executor.Handle {
	chunks := chunkIDs(ids, riot.MaxSummonerIDsPerCall)
	handles := make([]executor.Handle, 0, len(chunks))
	for _, chunk := range chunks {
		requested := chunk
		op := riot.GetSummonersByID{Region: riot.Region(region), IDs: requested}
		handles = append(handles, p.submitter.Submit(ctx, op, func(ctx context.Context, res riot.Result, callErr error) error {
			if callErr != nil {
				if riot.IsNotFound(callErr) {
					if err := p.summoners.TouchProfileUpdate(ctx, region, requested, p.now()); err != nil {
						return fmt.Errorf("touch profile update: %w", err)
					}
				}
				return nil
			}
			m, ok := res.(riot.SummonerMap)
			if !ok {
				return fmt.Errorf("unexpected result %T for summoners", res)
			}
			_, err := p.storage.StoreSummoners(ctx, region, m)
			return err
		}))
	}
	return handles
}

// FetchLeagues refreshes ranked standing, batched per call limit. A
// not-found answer means none of the chunk is ranked.
func (p *IngestionPipeline) FetchLeagues(ctx context.Context, region string, ids []int64) []executor.Handle {
	chunks := chunkIDs(ids, riot.MaxLeagueSummonersPerCall)
	handles := make([]executor.Handle, 0, len(chunks))
	for _, chunk := range chunks {
		requested := chunk
		op := riot.GetLeagues{Region: riot.Region(region), SummonerIDs: requested}
		handles = append(handles, p.submitter.Submit(ctx, op, func(ctx context.Context, res riot.Result, callErr error) error {
			if callErr != nil {
				if riot.IsNotFound(callErr) {
					_, err := p.storage.StoreLeagues(ctx, region, requested, nil)
					return err
				}
				return nil
			}
			m, ok := res.(riot.LeagueMap)
			if !ok {
				return fmt.Errorf("unexpected result %T for leagues", res)
			}
			_, err := p.storage.StoreLeagues(ctx, region, requested, m)
			return err
		}))
	}
	return handles
}

// FetchMatchList lists recent ranked matches and fans out detail fetches.
func (p *IngestionPipeline) FetchMatchList(ctx context.Context, region string, summonerID int64) executor.Handle {
	op := riot.GetMatchList{Region: riot.Region(region), SummonerID: summonerID}
	return p.submitter.Submit(ctx, op, func(ctx context.Context, res riot.Result, callErr error) error {
		if callErr != nil {
			if riot.IsNotFound(callErr) {
				if err := p.summoners.TouchMatchesUpdate(ctx, region, summonerID, p.now()); err != nil {
					return fmt.Errorf("touch matches update: %w", err)
				}
			}
			return nil
		}
		list, ok := res.(riot.MatchList)
		if !ok {
			return fmt.Errorf("unexpected result %T for match list", res)
		}
		_, err := p.fanout.Dispatch(ctx, region, summonerID, list)
		return err
	})
}

func (p *IngestionPipeline) FetchChallenger(ctx context.Context, region, queue string) executor.Handle {
	op := riot.GetChallenger{Region: riot.Region(region), Queue: queue}
	return p.submitter.Submit(ctx, op, func(ctx context.Context, res riot.Result, callErr error) error {
		if callErr != nil {
			return nil
		}
		l, ok := res.(riot.League)
		if !ok {
			return fmt.Errorf("unexpected result %T for challenger league", res)
		}
		_, err := p.storage.StoreLeague(ctx, region, l)
		return err
	})
}

// FullQuery submits profile, match list and leagues for one summoner.
func (p *IngestionPipeline) FullQuery(ctx context.Context, region string, summonerID int64) []executor.Handle {
	handles := p.FetchSummoners(ctx, region, []int64{summonerID})
	handles = append(handles, p.DataPull(ctx, region, summonerID)...)
	return handles
}

// DataPull submits the match list and leagues of an already stored summoner.
func (p *IngestionPipeline) DataPull(ctx context.Context, region string, summonerID int64) []executor.Handle {
	handles := []executor.Handle{p.FetchMatchList(ctx, region, summonerID)}
	return append(handles, p.FetchLeagues(ctx, region, []int64{summonerID})...)
}

func (p *IngestionPipeline) RefreshStaticData(ctx context.Context, region string) []executor.Handle {
	r := riot.Region(region)
	champions := p.submitter.Submit(ctx, riot.GetChampionList{Region: r}, func(ctx context.Context, res riot.Result, callErr error) error {
		if callErr != nil {
			return nil
		}
		list, ok := res.(riot.ChampionList)
		if !ok {
			return fmt.Errorf("unexpected result %T for champion list", res)
		}
		added, err := p.storage.StoreChampions(ctx, list)
		if err != nil {
			return err
		}
		p.logger.InfoContext(ctx, "champions stored", "region", region, "added", added)
		return nil
	})
	spells := p.submitter.Submit(ctx, riot.GetSummonerSpellList{Region: r}, func(ctx context.Context, res riot.Result, callErr error) error {
		if callErr != nil {
			return nil
		}
		list, ok := res.(riot.SpellList)
		if !ok {
			return fmt.Errorf("unexpected result %T for spell list", res)
		}
		n, err := p.storage.StoreSpells(ctx, list)
		if err != nil {
			return err
		}
		p.logger.InfoContext(ctx, "summoner spells stored", "region", region, "count", n)
		return nil
	})
	return []executor.Handle{champions, spells}
}

// BackfillLeagues fetches standing for summoners whose leagues were never
// stored, e.g. those only seen inside matches.
func (p *IngestionPipeline) BackfillLeagues(ctx context.Context, region string, limit int) ([]executor.Handle, error) {
	ctx, span := startSpan(ctx, "usecase.IngestionPipeline.BackfillLeagues", regionAttr(region))
	defer span.End()

	ids, err := p.summoners.ListLeaguesNeverUpdated(ctx, region, limit)
	if err != nil {
		return nil, fmt.Errorf("list summoners without leagues: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	p.logger.InfoContext(ctx, "backfill leagues", "region", region, "summoners", len(ids))
	return p.FetchLeagues(ctx, region, ids), nil
}

func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = 1
	}
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	out := make([][]int64, 0, (len(unique)+size-1)/size)
	for start := 0; start < len(unique); start += size {
		end := min(start+size, len(unique))
		out = append(out, unique[start:end:end])
	}
	return out
}
