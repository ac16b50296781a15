package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func (r *LeagueRepository) Get(_ context.Context, key league.Key) (league.League, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st, ok := r.store.leagues[key]
	if !ok {
		return league.League{}, false, nil
	}
	return st.league, true, nil
}

func (r *LeagueRepository) ListEntries(_ context.Context, key league.Key) ([]league.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st, ok := r.store.leagues[key]
	if !ok {
		return nil, nil
	}
	return append([]league.Entry(nil), st.entries...), nil
}

func (r *LeagueRepository) ReplaceEntries(_ context.Context, key league.Key, entries []league.Entry, minInterval time.Duration, now time.Time) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st, ok := r.store.leagues[key]
	if !ok {
		st = &leagueState{league: league.League{Key: key}}
		r.store.leagues[key] = st
	}
	if !league.UpdateDue(st.league.LastUpdate, minInterval, now) {
		return false, nil
	}

	st.entries = league.DedupEntries(entries)
	stamp := now
	st.league.LastUpdate = &stamp
	return true, nil
}
