package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
)

type StaticDataRepository struct {
	store *Store
}

func (r *StaticDataRepository) AddChampions(_ context.Context, champions []staticdata.Champion) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := 0
	for _, c := range champions {
		if _, ok := r.store.champions[c.ChampionID]; ok {
			continue
		}
		r.store.champions[c.ChampionID] = c
		created++
	}
	return created, nil
}

func (r *StaticDataRepository) ReplaceSpells(_ context.Context, spells []staticdata.Spell) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.spells = make(map[int]staticdata.Spell, len(spells))
	for _, s := range spells {
		r.store.spells[s.SpellID] = s
	}
	return len(r.store.spells), nil
}

func (r *StaticDataRepository) ListChampions(_ context.Context) ([]staticdata.Champion, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]staticdata.Champion, 0, len(r.store.champions))
	for _, c := range r.store.champions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChampionID < out[j].ChampionID })
	return out, nil
}

func (r *StaticDataRepository) ListSpells(_ context.Context) ([]staticdata.Spell, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]staticdata.Spell, 0, len(r.store.spells))
	for _, s := range r.store.spells {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpellID < out[j].SpellID })
	return out, nil
}
