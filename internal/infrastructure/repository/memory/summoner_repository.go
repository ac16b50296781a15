package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/shared"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
)

type SummonerRepository struct {
	store *Store
}

func (r *SummonerRepository) GetByID(_ context.Context, region string, summonerID int64) (summoner.Summoner, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.summoners[summonerKey{region: region, id: summonerID}]
	return s, ok, nil
}

func (r *SummonerRepository) GetByStdName(_ context.Context, region, stdName string) (summoner.Summoner, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key, ok := r.store.byStdName[stdNameKey(region, stdName)]
	if !ok {
		return summoner.Summoner{}, false, nil
	}
	s, ok := r.store.summoners[key]
	return s, ok, nil
}

func (r *SummonerRepository) Upsert(_ context.Context, s summoner.Summoner) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := summonerKey{region: s.Region, id: s.SummonerID}
	existing, exists := r.store.summoners[key]
	if other, taken := r.store.byStdName[stdNameKey(s.Region, s.StdName)]; taken && other != key {
		return false, fmt.Errorf("upsert summoner region=%s id=%d: %w", s.Region, s.SummonerID, shared.ErrConflict)
	}

	if exists {
		s = summoner.ApplyFull(existing, s)
	}
	r.store.putSummonerLocked(s, existing, exists)
	return !exists, nil
}

func (r *SummonerRepository) TouchMatchesUpdate(_ context.Context, region string, summonerID int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := summonerKey{region: region, id: summonerID}
	if s, ok := r.store.summoners[key]; ok {
		s.LastMatchesUpdate = &at
		r.store.summoners[key] = s
	}
	return nil
}

func (r *SummonerRepository) TouchProfileUpdate(_ context.Context, region string, summonerIDs []int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range summonerIDs {
		key := summonerKey{region: region, id: id}
		if s, ok := r.store.summoners[key]; ok {
			s.LastUpdate = at
			r.store.summoners[key] = s
		}
	}
	return nil
}

func (r *SummonerRepository) TouchFullUpdate(_ context.Context, region string, summonerID int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := summonerKey{region: region, id: summonerID}
	if s, ok := r.store.summoners[key]; ok {
		s.LastFullUpdate = &at
		r.store.summoners[key] = s
	}
	return nil
}

func (r *SummonerRepository) TouchLeaguesUpdate(_ context.Context, region string, summonerIDs []int64, at time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	touched := 0
	for _, id := range summonerIDs {
		key := summonerKey{region: region, id: id}
		s, ok := r.store.summoners[key]
		if !ok {
			continue
		}
		s.LastLeaguesUpdate = &at
		r.store.summoners[key] = s
		touched++
	}
	return touched, nil
}

func (r *SummonerRepository) ListStale(_ context.Context, region string, olderThan time.Time, limit int) ([]summoner.Summoner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]summoner.Summoner, 0)
	for key, s := range r.store.summoners {
		if key.region != region || !s.Complete() || !s.LastUpdate.Before(olderThan) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastUpdate.Equal(out[j].LastUpdate) {
			return out[i].SummonerID < out[j].SummonerID
		}
		return out[i].LastUpdate.Before(out[j].LastUpdate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SummonerRepository) ListLeaguesNeverUpdated(_ context.Context, region string, limit int) ([]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]int64, 0)
	for key, s := range r.store.summoners {
		if key.region == region && s.LastLeaguesUpdate == nil {
			out = append(out, key.id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// putSummonerLocked writes s and keeps the std name index in sync. Callers
// hold s.mu.
func (s *Store) putSummonerLocked(next, prev summoner.Summoner, hadPrev bool) {
	key := summonerKey{region: next.Region, id: next.SummonerID}
	if hadPrev {
		delete(s.byStdName, stdNameKey(prev.Region, prev.StdName))
	}
	s.summoners[key] = next
	s.byStdName[stdNameKey(next.Region, next.StdName)] = key
}

// mergePartialLocked mirrors the postgres partial resolution: a std name
// collision with another summoner leaves the slot unresolved.
func (s *Store) mergePartialLocked(p summoner.Partial, refreshTTL time.Duration, now time.Time) {
	key := summonerKey{region: p.Region, id: p.SummonerID}
	var existing *summoner.Summoner
	prev, hadPrev := s.summoners[key]
	if hadPrev {
		existing = &prev
	}

	merged, write := summoner.MergePartial(existing, p, refreshTTL, now)
	if !write {
		return
	}
	if other, taken := s.byStdName[stdNameKey(merged.Region, merged.StdName)]; taken && other != key {
		return
	}
	s.putSummonerLocked(merged, prev, hadPrev)
}
