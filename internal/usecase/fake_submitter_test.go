package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

// fakeSubmitter runs every task inline: respond, then the callback.
type fakeSubmitter struct {
	mu      sync.Mutex
	respond func(op riot.Operation) (riot.Result, error)
	ops     []riot.Operation
	records map[executor.Handle]executor.Record
}

func newFakeSubmitter(respond func(op riot.Operation) (riot.Result, error)) *fakeSubmitter {
	return &fakeSubmitter{
		respond: respond,
		records: make(map[executor.Handle]executor.Record),
	}
}

func (f *fakeSubmitter) Submit(ctx context.Context, op riot.Operation, then executor.Callback) executor.Handle {
	f.mu.Lock()
	f.ops = append(f.ops, op)
	h := executor.Handle(fmt.Sprintf("task-%d", len(f.ops)))
	f.mu.Unlock()

	rec := executor.Record{Handle: h, Operation: op.Kind(), Key: op.Key(), Attempts: 1, Status: task.StatusSuccess}
	res, err := f.respond(op)
	if err != nil {
		rec.Status = task.StatusFailed
		rec.LastError = err.Error()
	}
	if then != nil && (err == nil || riot.IsNotFound(err)) {
		if cbErr := then(ctx, res, err); cbErr != nil {
			rec.Status = task.StatusFailed
			rec.LastError = cbErr.Error()
		}
	}

	f.mu.Lock()
	f.records[h] = rec
	f.mu.Unlock()
	return h
}

func (f *fakeSubmitter) Wait(_ context.Context, handles ...executor.Handle) ([]executor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]executor.Record, 0, len(handles))
	for _, h := range handles {
		rec, ok := f.records[h]
		if !ok {
			rec = executor.Record{Handle: h, Status: task.StatusUnknown}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeSubmitter) submitted() []riot.Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]riot.Operation(nil), f.ops...)
}

func (f *fakeSubmitter) countKind(kind string) int {
	n := 0
	for _, op := range f.submitted() {
		if op.Kind() == kind {
			n++
		}
	}
	return n
}

func notFoundErr(op string) error {
	return &riot.APIError{Class: riot.ClassNotFound, Operation: op, StatusCode: 404}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// testServices wires every use case over one in-memory store.
type testServices struct {
	store     *memory.Store
	invalid   *memory.InvalidQueryRepository
	submitter *fakeSubmitter
	clock     *testClock
	storage   *StorageService
	fanout    *MatchFanOut
	pipeline  *IngestionPipeline
	summoners *SummonerService
}

func newTestServices(respond func(op riot.Operation) (riot.Result, error)) *testServices {
	store := memory.NewStore()
	invalid := memory.NewInvalidQueryRepository()
	submitter := newFakeSubmitter(respond)
	clock := newTestClock()
	logger := logging.NewNop()

	storage := NewStorageService(store.Summoners(), store.Leagues(), store.Matches(), store.StaticData(), StorageConfig{}, logger)
	storage.now = clock.Now
	fanout := NewMatchFanOut(store.Matches(), store.Summoners(), storage, submitter, FanOutConfig{}, logger)
	fanout.now = clock.Now
	pipeline := NewIngestionPipeline(submitter, storage, fanout, store.Summoners(), logger)
	pipeline.now = clock.Now
	summoners := NewSummonerService(store.Summoners(), invalid, submitter, storage, pipeline, NewFreshnessPolicy(FreshnessConfig{}), 0, logger)
	summoners.now = clock.Now

	return &testServices{
		store:     store,
		invalid:   invalid,
		submitter: submitter,
		clock:     clock,
		storage:   storage,
		fanout:    fanout,
		pipeline:  pipeline,
		summoners: summoners,
	}
}

func sampleMatch(matchID int64, players ...riot.Player) riot.MatchDetail {
	detail := riot.MatchDetail{
		MatchID:       matchID,
		Region:        "EUW",
		PlatformID:    "EUW1",
		MapID:         11,
		MatchCreation: 1456012800000,
		MatchDuration: 1800,
		MatchMode:     "CLASSIC",
		MatchType:     "MATCHED_GAME",
		MatchVersion:  "6.3.0.240",
		QueueType:     "RANKED_SOLO_5x5",
		Season:        "SEASON2016",
		Teams: []riot.Team{
			{TeamID: 100, Winner: true, FirstBlood: true, TowerKills: 9},
			{TeamID: 200, TowerKills: 2},
		},
	}
	for i, p := range players {
		participantID := i + 1
		player := p
		detail.Participants = append(detail.Participants, riot.Participant{
			ParticipantID: participantID,
			TeamID:        100 + 100*(i%2),
			ChampionID:    100 + i,
			Stats:         riot.ParticipantStats{Winner: i%2 == 0, Kills: i, Item0: 3006},
		})
		detail.ParticipantIdentities = append(detail.ParticipantIdentities, riot.ParticipantIdentity{
			ParticipantID: participantID,
			Player:        &player,
		})
	}
	return detail
}
