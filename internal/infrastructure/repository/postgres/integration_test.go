//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-stats/internal/domain/league"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/shared"
	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("lol_stats"),
		tcpostgres.WithUsername("lol"),
		tcpostgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dir, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	m, err := migrate.New("file://"+filepath.ToSlash(dir), dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("apply migrations: %v", err)
	}
	_, _ = m.Close()

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresRepositories(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	revision := now.Add(-time.Hour)

	summoners := NewSummonerRepository(db)
	matches := NewMatchRepository(db)
	leagues := NewLeagueRepository(db)
	static := NewStaticDataRepository(db)
	invalid := NewInvalidQueryRepository(db)
	tasks := NewTaskDispatchRepository(db)

	t.Run("summoner upsert is idempotent and std names are unique", func(t *testing.T) {
		s := summoner.Summoner{Region: "EUW", SummonerID: 1, RevisionDate: &revision, LastUpdate: now, LastFullUpdate: &now}.WithName("Alpha One")
		created, err := summoners.Upsert(ctx, s)
		require.NoError(t, err)
		require.True(t, created)

		created, err = summoners.Upsert(ctx, s)
		require.NoError(t, err)
		require.False(t, created)

		got, ok, err := summoners.GetByStdName(ctx, "EUW", "alphaone")
		require.NoError(t, err)
		require.True(t, ok)
		if got.SummonerID != 1 || !got.Complete() {
			t.Fatalf("unexpected summoner: %+v", got)
		}

		clash := summoner.Summoner{Region: "EUW", SummonerID: 2, RevisionDate: &revision, LastUpdate: now}.WithName("alpha one")
		_, err = summoners.Upsert(ctx, clash)
		if !errors.Is(err, shared.ErrConflict) {
			t.Fatalf("unexpected error: got=%v want=%v", err, shared.ErrConflict)
		}
	})

	t.Run("match create resolves partial summoners once", func(t *testing.T) {
		m := match.Match{
			Region:   "EUW",
			MatchID:  1001,
			Creation: now.Add(-2 * time.Hour),
			Duration: 30 * time.Minute,
			Participants: []match.Participant{
				{ParticipantID: 1, TeamID: 100, ChampionID: 1, Winner: true, Items: [7]int{3006}},
				{ParticipantID: 2, TeamID: 200, ChampionID: 2},
			},
			Identities: []match.ParticipantIdentity{
				{ParticipantID: 1, Player: &summoner.Partial{SummonerID: 1, Name: "Alpha One"}},
				{ParticipantID: 2, Player: &summoner.Partial{SummonerID: 500, Name: "Stranger"}},
			},
			Teams: []match.Team{{TeamID: 100, Winner: true}, {TeamID: 200}},
		}
		created, err := matches.Create(ctx, m, 7*24*time.Hour, now)
		require.NoError(t, err)
		require.True(t, created)

		created, err = matches.Create(ctx, m, 7*24*time.Hour, now)
		require.NoError(t, err)
		require.False(t, created)

		existing, err := matches.ExistingIDs(ctx, "EUW", []int64{1001, 1002})
		require.NoError(t, err)
		require.Equal(t, []int64{1001}, existing)

		partial, ok, err := summoners.GetByID(ctx, "EUW", 500)
		require.NoError(t, err)
		require.True(t, ok)
		if partial.Complete() || partial.StdName != "stranger" {
			t.Fatalf("unexpected partial summoner: %+v", partial)
		}

		ids, err := summoners.ListLeaguesNeverUpdated(ctx, "EUW", 10)
		require.NoError(t, err)
		require.ElementsMatch(t, []int64{1, 500}, ids)
	})

	t.Run("league entries replaced at most once per interval", func(t *testing.T) {
		key := league.Key{Region: "EUW", Queue: "RANKED_SOLO_5x5", Name: "Fizz's Fighters", Tier: "GOLD"}
		entries := []league.Entry{{PlayerOrTeamID: "1", PlayerOrTeamName: "Alpha One", Division: "I", LeaguePoints: 50}}

		replaced, err := leagues.ReplaceEntries(ctx, key, entries, time.Minute, now)
		require.NoError(t, err)
		require.True(t, replaced)

		replaced, err = leagues.ReplaceEntries(ctx, key, nil, time.Minute, now.Add(10*time.Second))
		require.NoError(t, err)
		require.False(t, replaced)

		got, err := leagues.ListEntries(ctx, key)
		require.NoError(t, err)
		require.Len(t, got, 1)

		touched, err := summoners.TouchLeaguesUpdate(ctx, "EUW", []int64{1, 999}, now)
		require.NoError(t, err)
		require.Equal(t, 1, touched)
	})

	t.Run("static data", func(t *testing.T) {
		added, err := static.AddChampions(ctx, []staticdata.Champion{{ChampionID: 1, Key: "Annie", Name: "Annie"}})
		require.NoError(t, err)
		require.Equal(t, 1, added)
		added, err = static.AddChampions(ctx, []staticdata.Champion{{ChampionID: 1, Key: "Annie", Name: "Renamed"}})
		require.NoError(t, err)
		require.Equal(t, 0, added)

		n, err := static.ReplaceSpells(ctx, []staticdata.Spell{{SpellID: 4, Key: "SummonerFlash", Name: "Flash"}})
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("negative cache", func(t *testing.T) {
		require.NoError(t, invalid.Record(ctx, summoner.InvalidQuery{Region: "NA", StdName: "nobody", CreatedAt: now}, 30*time.Minute))

		recent, err := invalid.IsRecent(ctx, "NA", "nobody", 30*time.Minute, now.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, recent)

		recent, err = invalid.IsRecent(ctx, "NA", "nobody", 30*time.Minute, now.Add(31*time.Minute))
		require.NoError(t, err)
		require.False(t, recent)
	})

	t.Run("task events upsert by handle", func(t *testing.T) {
		event := task.Event{Handle: "h-1", Operation: "get_match", Key: "EUW:1001", Region: "EUW", Status: task.StatusPending, OccurredAt: now}
		require.NoError(t, tasks.UpsertEvent(ctx, event))
		event.Status = task.StatusSuccess
		event.Attempts = 1
		require.NoError(t, tasks.UpsertEvent(ctx, event))

		var status string
		require.NoError(t, db.GetContext(ctx, &status, `SELECT status FROM task_dispatches WHERE handle = $1`, "h-1"))
		require.Equal(t, string(task.StatusSuccess), status)
	})
}
