package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/lol-stats/internal/domain/league"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/shared"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fullSummoner(id int64, name string) summoner.Summoner {
	rev := baseTime.Add(-time.Hour)
	return summoner.Summoner{
		Region:        "EUW",
		SummonerID:    id,
		ProfileIconID: 7,
		SummonerLevel: 30,
		RevisionDate:  &rev,
		LastUpdate:    baseTime,
	}.WithName(name)
}

func TestSummonerRepository_UpsertKeepsStdNameIndexInSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Summoners()

	created, err := repo.Upsert(ctx, fullSummoner(1, "Faker Fan"))
	if err != nil || !created {
		t.Fatalf("unexpected first upsert: created=%v err=%v", created, err)
	}

	created, err = repo.Upsert(ctx, fullSummoner(1, "New Name"))
	if err != nil || created {
		t.Fatalf("unexpected second upsert: created=%v err=%v", created, err)
	}

	if _, ok, _ := repo.GetByStdName(ctx, "EUW", "fakerfan"); ok {
		t.Fatalf("expected old std name to be released")
	}
	got, ok, _ := repo.GetByStdName(ctx, "EUW", "newname")
	if !ok || got.SummonerID != 1 {
		t.Fatalf("unexpected lookup by new std name: ok=%v got=%+v", ok, got)
	}
}

func TestSummonerRepository_UpsertStdNameCollisionIsConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Summoners()

	if _, err := repo.Upsert(ctx, fullSummoner(1, "Same")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	_, err := repo.Upsert(ctx, fullSummoner(2, "same"))
	if !errors.Is(err, shared.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSummonerRepository_ListStaleOnlyCompleteOldestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	repo := store.Summoners()

	older := fullSummoner(1, "Older")
	older.LastUpdate = baseTime.Add(-3 * time.Hour)
	newer := fullSummoner(2, "Newer")
	newer.LastUpdate = baseTime.Add(-2 * time.Hour)
	fresh := fullSummoner(3, "Fresh")
	for _, s := range []summoner.Summoner{newer, older, fresh} {
		if _, err := repo.Upsert(ctx, s); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	// incomplete rows are never swept
	if _, err := store.Matches().Create(ctx, match.Match{
		Region:     "EUW",
		MatchID:    9,
		Identities: []match.ParticipantIdentity{{ParticipantID: 1, Player: &summoner.Partial{SummonerID: 4, Name: "Partial"}}},
	}, time.Hour, baseTime.Add(-5*time.Hour)); err != nil {
		t.Fatalf("create match: %v", err)
	}

	got, err := repo.ListStale(ctx, "EUW", baseTime.Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("list stale: %v", err)
	}
	if len(got) != 2 || got[0].SummonerID != 1 || got[1].SummonerID != 2 {
		t.Fatalf("unexpected stale summoners: %+v", got)
	}
}

func TestMatchRepository_ConcurrentCreateStoresOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Matches()
	m := match.Match{Region: "NA", MatchID: 42}

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Create(ctx, m, time.Hour, baseTime)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("unexpected created count: got=%d want=1", created)
	}
	ids, _ := repo.ExistingIDs(ctx, "NA", []int64{42, 43})
	if len(ids) != 1 || ids[0] != 42 {
		t.Fatalf("unexpected existing ids: %v", ids)
	}
}

func TestMatchRepository_CreateResolvesPartialSummoners(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	summoners := store.Summoners()
	matches := store.Matches()

	known := fullSummoner(1, "Known")
	if _, err := summoners.Upsert(ctx, known); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	m := match.Match{
		Region:  "EUW",
		MatchID: 100,
		Identities: []match.ParticipantIdentity{
			{ParticipantID: 1, Player: &summoner.Partial{SummonerID: 1, Name: "Renamed", ProfileIconID: 9}},
			{ParticipantID: 2, Player: &summoner.Partial{SummonerID: 2, Name: "Stranger"}},
		},
	}
	if _, err := matches.Create(ctx, m, 7*24*time.Hour, baseTime.Add(time.Minute)); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _, _ := summoners.GetByID(ctx, "EUW", 1)
	if got.Name != "Known" {
		t.Fatalf("expected fresh summoner to keep direct-fetch name, got %q", got.Name)
	}
	stranger, ok, _ := summoners.GetByID(ctx, "EUW", 2)
	if !ok || stranger.Complete() || stranger.StdName != "stranger" {
		t.Fatalf("unexpected partial summoner: ok=%v %+v", ok, stranger)
	}
}

func TestLeagueRepository_ReplaceIsGuardedByInterval(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Leagues()
	key := league.Key{Region: "KR", Queue: "RANKED_SOLO_5x5", Name: "Syndra's Hunters", Tier: "CHALLENGER"}

	oldEntries := []league.Entry{{PlayerOrTeamID: "1"}, {PlayerOrTeamID: "2"}}
	if ok, err := repo.ReplaceEntries(ctx, key, oldEntries, time.Minute, baseTime); err != nil || !ok {
		t.Fatalf("unexpected first replace: ok=%v err=%v", ok, err)
	}

	newEntries := []league.Entry{{PlayerOrTeamID: "3"}}
	if ok, err := repo.ReplaceEntries(ctx, key, newEntries, time.Minute, baseTime.Add(10*time.Second)); err != nil || ok {
		t.Fatalf("expected replace inside interval to be a no-op: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.ReplaceEntries(ctx, key, newEntries, time.Minute, baseTime.Add(2*time.Minute)); err != nil || !ok {
		t.Fatalf("unexpected replace after interval: ok=%v err=%v", ok, err)
	}

	got, _ := repo.ListEntries(ctx, key)
	if len(got) != 1 || got[0].PlayerOrTeamID != "3" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestInvalidQueryRepository_IsRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewInvalidQueryRepository()
	ttl := 10 * time.Second

	if err := repo.Record(ctx, summoner.InvalidQuery{Region: "NA", StdName: "ghost", CreatedAt: baseTime}, ttl); err != nil {
		t.Fatalf("record: %v", err)
	}

	recent, _ := repo.IsRecent(ctx, "NA", "ghost", ttl, baseTime.Add(5*time.Second))
	if !recent {
		t.Fatalf("expected entry to be recent inside ttl")
	}
	recent, _ = repo.IsRecent(ctx, "NA", "ghost", ttl, baseTime.Add(11*time.Second))
	if recent {
		t.Fatalf("expected entry to expire after ttl")
	}
	recent, _ = repo.IsRecent(ctx, "EUW", "ghost", ttl, baseTime)
	if recent {
		t.Fatalf("expected regions to be isolated")
	}
}

func TestInvalidQueryRepository_FollowsCallerClock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewInvalidQueryRepository()
	ttl := 10 * time.Second

	// Far from the wall clock in both directions.
	for _, created := range []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		name := "ghost" + created.Format("2006")
		if err := repo.Record(ctx, summoner.InvalidQuery{Region: "NA", StdName: name, CreatedAt: created}, ttl); err != nil {
			t.Fatalf("record: %v", err)
		}
		recent, err := repo.IsRecent(ctx, "NA", name, ttl, created.Add(5*time.Second))
		if err != nil || !recent {
			t.Fatalf("unexpected recent at %s: got=%v err=%v want=true", created, recent, err)
		}
		recent, err = repo.IsRecent(ctx, "NA", name, ttl, created.Add(11*time.Second))
		if err != nil || recent {
			t.Fatalf("unexpected recent after ttl at %s: got=%v err=%v want=false", created, recent, err)
		}
	}
}
