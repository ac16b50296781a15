package executor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	"github.com/riskibarqy/lol-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lol-stats/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

type scriptedInvoker struct {
	mu    sync.Mutex
	calls []time.Time
	now   func() time.Time
	steps []func() (riot.Result, error)
}

func (s *scriptedInvoker) Invoke(_ context.Context, _ riot.Operation) (riot.Result, error) {
	s.mu.Lock()
	idx := len(s.calls)
	s.calls = append(s.calls, s.now())
	step := s.steps[len(s.steps)-1]
	if idx < len(s.steps) {
		step = s.steps[idx]
	}
	s.mu.Unlock()
	return step()
}

func (s *scriptedInvoker) callTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.calls...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	return nil
}

func fastConfig() Config {
	return Config{
		Admission: resilience.AdmissionConfig{RatePerSecond: 1000, Burst: 10, Concurrency: 2},
		Retry:     resilience.RetryPolicy{MaxRetries: 3, DefaultDelay: time.Second},
		PoolSize:  4,
	}
}

func newTestExecutor(t *testing.T, invoker Invoker, clock *fakeClock, opts ...Option) *Executor {
	t.Helper()

	opts = append([]Option{WithClock(clock.Now), WithSleep(clock.Sleep)}, opts...)
	e, err := New(invoker, fastConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Close(ctx)
	})
	return e
}

func waitOne(t *testing.T, e *Executor, h Handle) Record {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	recs, err := e.Wait(ctx, h)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	return recs[0]
}

var testOp = riot.GetMatch{Region: riot.RegionEUW, MatchID: 1}

func TestExecutor_RetriesRateLimitedAfterServerHint(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) {
			return nil, &riot.APIError{Class: riot.ClassRateLimited, StatusCode: 429, RetryAfter: 5 * time.Second, HasRetryAfter: true}
		},
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
	}}
	e := newTestExecutor(t, invoker, clock)

	var callbacks atomic.Int32
	h := e.Submit(context.Background(), testOp, func(_ context.Context, res riot.Result, callErr error) error {
		callbacks.Add(1)
		if callErr != nil {
			t.Errorf("unexpected callback error: %v", callErr)
		}
		if _, ok := res.(riot.MatchDetail); !ok {
			t.Errorf("unexpected result type %T", res)
		}
		return nil
	})

	rec := waitOne(t, e, h)
	if rec.Status != task.StatusSuccess {
		t.Fatalf("unexpected status: got=%s want=%s (err=%s)", rec.Status, task.StatusSuccess, rec.LastError)
	}
	if rec.Attempts != 2 {
		t.Fatalf("unexpected attempts: got=%d want=2", rec.Attempts)
	}
	if callbacks.Load() != 1 {
		t.Fatalf("unexpected callback count: got=%d want=1", callbacks.Load())
	}

	calls := invoker.callTimes()
	require.Len(t, calls, 2)
	if gap := calls[1].Sub(calls[0]); gap < 5*time.Second {
		t.Fatalf("retry ran too early: gap=%s", gap)
	}
}

func TestExecutor_ServerErrorUsesDefaultDelay(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return nil, &riot.APIError{Class: riot.ClassServerError, StatusCode: 503} },
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
	}}
	e := newTestExecutor(t, invoker, clock)

	rec := waitOne(t, e, e.Submit(context.Background(), testOp, nil))
	if rec.Status != task.StatusSuccess {
		t.Fatalf("unexpected status: got=%s", rec.Status)
	}
	calls := invoker.callTimes()
	if gap := calls[1].Sub(calls[0]); gap != time.Second {
		t.Fatalf("unexpected retry delay: got=%s want=1s", gap)
	}
}

func TestExecutor_ExhaustionFailsWithoutCallback(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return nil, &riot.APIError{Class: riot.ClassServerError, StatusCode: 500} },
	}}
	e := newTestExecutor(t, invoker, clock)

	called := false
	rec := waitOne(t, e, e.Submit(context.Background(), testOp, func(context.Context, riot.Result, error) error {
		called = true
		return nil
	}))

	if rec.Status != task.StatusFailed {
		t.Fatalf("unexpected status: got=%s want=%s", rec.Status, task.StatusFailed)
	}
	if rec.Attempts != 4 {
		t.Fatalf("unexpected attempts: got=%d want=4", rec.Attempts)
	}
	if rec.LastError == "" {
		t.Fatalf("expected last error to be recorded")
	}
	if called {
		t.Fatalf("callback must not run for exhausted tasks")
	}
}

func TestExecutor_NotFoundRunsCallbackWithNegativeResult(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return nil, &riot.APIError{Class: riot.ClassNotFound, StatusCode: 404} },
	}}
	e := newTestExecutor(t, invoker, clock)

	var gotErr error
	var gotRes riot.Result
	rec := waitOne(t, e, e.Submit(context.Background(), testOp, func(_ context.Context, res riot.Result, callErr error) error {
		gotRes, gotErr = res, callErr
		return nil
	}))

	if rec.Status != task.StatusFailed || rec.Attempts != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if gotRes != nil || !riot.IsNotFound(gotErr) {
		t.Fatalf("unexpected callback input: res=%v err=%v", gotRes, gotErr)
	}
	if len(invoker.callTimes()) != 1 {
		t.Fatalf("not found must not be retried")
	}
}

func TestExecutor_UnclassifiedErrorSkipsCallback(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return nil, errors.New("tls handshake exploded") },
	}}
	e := newTestExecutor(t, invoker, clock)

	called := false
	rec := waitOne(t, e, e.Submit(context.Background(), testOp, func(context.Context, riot.Result, error) error {
		called = true
		return nil
	}))

	if rec.Status != task.StatusFailed || rec.Attempts != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if called {
		t.Fatalf("callback must not run for unclassified failures")
	}
}

func TestExecutor_PanicsAreContained(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { panic("adapter bug") },
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
	}}
	e := newTestExecutor(t, invoker, clock)

	first := waitOne(t, e, e.Submit(context.Background(), testOp, nil))
	if first.Status != task.StatusFailed {
		t.Fatalf("expected panicking call to fail, got %s", first.Status)
	}

	second := waitOne(t, e, e.Submit(context.Background(), testOp, func(context.Context, riot.Result, error) error {
		panic("callback bug")
	}))
	if second.Status != task.StatusFailed {
		t.Fatalf("expected panicking callback to fail the task, got %s", second.Status)
	}

	third := waitOne(t, e, e.Submit(context.Background(), testOp, nil))
	if third.Status != task.StatusSuccess {
		t.Fatalf("expected worker to survive panics, got %s", third.Status)
	}
}

func TestExecutor_CallbackErrorFailsTask(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
	}}
	e := newTestExecutor(t, invoker, clock)

	rec := waitOne(t, e, e.Submit(context.Background(), testOp, func(context.Context, riot.Result, error) error {
		return errors.New("db down")
	}))
	if rec.Status != task.StatusFailed || rec.LastError == "" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestExecutor_StatusAllAndUnknownHandles(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 2}, nil },
		func() (riot.Result, error) { return nil, &riot.APIError{Class: riot.ClassClientError, StatusCode: 400} },
	}}
	e := newTestExecutor(t, invoker, clock)

	a := e.Submit(context.Background(), testOp, nil)
	waitOne(t, e, a)
	b := e.Submit(context.Background(), testOp, nil)
	waitOne(t, e, b)
	if !e.StatusAll([]Handle{a, b}) {
		t.Fatalf("expected all succeeded")
	}

	c := e.Submit(context.Background(), testOp, nil)
	waitOne(t, e, c)
	if e.StatusAll([]Handle{a, b, c}) {
		t.Fatalf("expected StatusAll to be false with a failed task")
	}

	if got := e.Status("missing"); got != task.StatusUnknown {
		t.Fatalf("unexpected status for unknown handle: got=%s", got)
	}
	if e.StatusAll([]Handle{a, "missing"}) {
		t.Fatalf("unknown handles must not count as succeeded")
	}
}

func TestExecutor_SubmitIsNonBlockingAndSurvivesCallerCancel(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	release := make(chan struct{})
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) {
			<-release
			return riot.MatchDetail{MatchID: 1}, nil
		},
	}}
	e := newTestExecutor(t, invoker, clock)

	ctx, cancel := context.WithCancel(context.Background())
	h := e.Submit(ctx, testOp, nil)
	cancel()

	if got := e.Status(h); got != task.StatusPending {
		t.Fatalf("unexpected status right after submit: got=%s", got)
	}
	close(release)

	if rec := waitOne(t, e, h); rec.Status != task.StatusSuccess {
		t.Fatalf("expected task to finish despite caller cancel, got %s", rec.Status)
	}
}

func TestExecutor_RecordsLifecycleEvents(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
	}}
	recorder := memory.NewStore().TaskDispatches()
	e := newTestExecutor(t, invoker, clock, WithRecorder(recorder))

	h := e.Submit(context.Background(), testOp, nil)
	waitOne(t, e, h)

	require.Eventually(t, func() bool {
		ev, ok := recorder.Event(string(h))
		return ok && ev.Status == task.StatusSuccess
	}, 2*time.Second, 10*time.Millisecond)

	ev, _ := recorder.Event(string(h))
	if ev.Operation != "get_match" || ev.Region != "EUW" || ev.Attempts != 1 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestExecutor_CloseRejectsNewWork(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	invoker := &scriptedInvoker{now: clock.Now, steps: []func() (riot.Result, error){
		func() (riot.Result, error) { return riot.MatchDetail{MatchID: 1}, nil },
	}}
	e, err := New(invoker, fastConfig(), WithClock(clock.Now), WithSleep(clock.Sleep))
	require.NoError(t, err)

	queued := e.Submit(context.Background(), testOp, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Close(ctx))

	if got := e.Status(queued); got != task.StatusSuccess {
		t.Fatalf("expected queued task to drain before close, got %s", got)
	}
	rejected := e.Submit(context.Background(), testOp, nil)
	rec, _ := e.Record(rejected)
	if rec.Status != task.StatusFailed || rec.LastError != ErrClosed.Error() {
		t.Fatalf("unexpected record after close: %+v", rec)
	}
}
