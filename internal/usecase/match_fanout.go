package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

const defaultMaxMatches = 15

// Recency picks which end of a match list is fetched.
type Recency string

const (
	RecencyMostRecent Recency = "most_recent"
	RecencyOldest     Recency = "oldest"
)

func ParseRecency(raw string) (Recency, error) {
	switch Recency(raw) {
	case "", RecencyMostRecent:
		return RecencyMostRecent, nil
	case RecencyOldest:
		return RecencyOldest, nil
	default:
		return "", fmt.Errorf("%w: unknown recency %q", ErrInvalidInput, raw)
	}
}

type FanOutConfig struct {
	MaxMatches int
	Recency    Recency
}

type FanOutResult struct {
	MatchIDs []int64
	Handles  []executor.Handle
	Existing int
}

// MatchFanOut turns a match list into one detail fetch per unseen match.
type MatchFanOut struct {
	matches   match.Repository
	summoners summoner.Repository
	storage   *StorageService
	submitter TaskSubmitter
	cfg       FanOutConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchFanOut(
	matches match.Repository,
	summoners summoner.Repository,
	storage *StorageService,
	submitter TaskSubmitter,
	cfg FanOutConfig,
	logger *logging.Logger,
) *MatchFanOut {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = defaultMaxMatches
	}
	if cfg.Recency == "" {
		cfg.Recency = RecencyMostRecent
	}
	return &MatchFanOut{
		matches:   matches,
		summoners: summoners,
		storage:   storage,
		submitter: submitter,
		cfg:       cfg,
		logger:    logger.Named("fanout"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch submits a GetMatch task for every match in the selected window
// that is not stored yet, then stamps the summoner's match refresh.
func (f *MatchFanOut) Dispatch(ctx context.Context, region string, summonerID int64, list riot.MatchList) (FanOutResult, error) {
	ctx, span := startSpan(ctx, "usecase.MatchFanOut.Dispatch", regionAttr(region))
	defer span.End()

	window := selectWindow(uniqueMatchIDs(list.Matches), f.cfg.MaxMatches, f.cfg.Recency)
	var result FanOutResult
	if len(window) > 0 {
		existing, err := f.matches.ExistingIDs(ctx, region, window)
		if err != nil {
			return result, fmt.Errorf("list existing matches: %w", err)
		}
		stored := make(map[int64]struct{}, len(existing))
		for _, id := range existing {
			stored[id] = struct{}{}
		}
		result.Existing = len(stored)

		for _, id := range window {
			if _, ok := stored[id]; ok {
				continue
			}
			op := riot.GetMatch{Region: riot.Region(region), MatchID: id}
			result.MatchIDs = append(result.MatchIDs, id)
			result.Handles = append(result.Handles, f.submitter.Submit(ctx, op, f.storeMatch(region)))
		}
	}

	if summonerID > 0 {
		if err := f.summoners.TouchMatchesUpdate(ctx, region, summonerID, f.now()); err != nil {
			return result, fmt.Errorf("touch matches update: %w", err)
		}
	}

	f.logger.DebugContext(ctx, "match fan-out dispatched",
		"region", region,
		"summoner_id", summonerID,
		"listed", len(list.Matches),
		"existing", result.Existing,
		"submitted", len(result.MatchIDs),
	)
	return result, nil
}

func (f *MatchFanOut) storeMatch(region string) executor.Callback {
	return func(ctx context.Context, res riot.Result, callErr error) error {
		if callErr != nil {
			return nil
		}
		detail, ok := res.(riot.MatchDetail)
		if !ok {
			return fmt.Errorf("unexpected result %T for match detail", res)
		}
		_, err := f.storage.StoreMatch(ctx, region, detail)
		return err
	}
}

func uniqueMatchIDs(refs []riot.MatchReference) []int64 {
	seen := make(map[int64]struct{}, len(refs))
	out := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if ref.MatchID <= 0 {
			continue
		}
		if _, ok := seen[ref.MatchID]; ok {
			continue
		}
		seen[ref.MatchID] = struct{}{}
		out = append(out, ref.MatchID)
	}
	return out
}

// selectWindow expects ids ordered newest first.
func selectWindow(ids []int64, limit int, recency Recency) []int64 {
	if limit <= 0 || len(ids) <= limit {
		return ids
	}
	if recency == RecencyOldest {
		return ids[len(ids)-limit:]
	}
	return ids[:limit]
}
