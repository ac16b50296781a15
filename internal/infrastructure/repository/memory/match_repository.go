package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) ExistingIDs(_ context.Context, region string, ids []int64) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := r.store.matches[matchKey{region: region, id: id}]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *MatchRepository) Get(_ context.Context, region string, matchID int64) (match.Match, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[matchKey{region: region, id: matchID}]
	return m, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match, partialRefreshTTL time.Duration, now time.Time) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := matchKey{region: m.Region, id: m.MatchID}
	if _, exists := r.store.matches[key]; exists {
		return false, nil
	}

	for _, p := range m.Players() {
		r.store.mergePartialLocked(p, partialRefreshTTL, now)
	}
	r.store.matches[key] = m
	return true, nil
}
