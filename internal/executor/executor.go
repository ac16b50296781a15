package executor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	"github.com/riskibarqy/lol-stats/internal/platform/id"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
	"github.com/riskibarqy/lol-stats/internal/platform/resilience"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/trace"
)

var ErrClosed = errors.New("executor closed")

const pruneEvery = time.Minute

// Invoker performs one remote call. *riot.Client satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, op riot.Operation) (riot.Result, error)
}

type Option func(*Executor)

// WithRecorder mirrors task lifecycle events to r. Recorder failures are
// logged and otherwise ignored.
func WithRecorder(r task.Recorder) Option {
	return func(e *Executor) { e.recorder = r }
}

func WithLogger(logger *logging.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger.Named("executor")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSleep replaces the retry wait.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

func WithIDGenerator(g id.Generator) Option {
	return func(e *Executor) {
		if g != nil {
			e.ids = g
		}
	}
}

// Executor runs remote calls asynchronously under one shared admission gate
// and a bounded retry policy. Submitted tasks are queued FIFO without bound
// and drained into a fixed worker pool.
type Executor struct {
	invoker   Invoker
	admission *resilience.Admission
	retry     resilience.RetryPolicy
	retention time.Duration
	pool      *ants.Pool
	ids       id.Generator
	recorder  task.Recorder
	logger    *logging.Logger
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	seq       atomic.Int64

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []*taskState
	tasks     map[Handle]*taskState
	closed    bool
	lastPrune time.Time

	loops   conc.WaitGroup
	pending sync.WaitGroup
}

func New(invoker Invoker, cfg Config, opts ...Option) (*Executor, error) {
	if invoker == nil {
		return nil, fmt.Errorf("executor invoker is required")
	}
	cfg = normalizeConfig(cfg)

	pool, err := ants.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("create executor worker pool: %w", err)
	}

	e := &Executor{
		invoker:   invoker,
		admission: resilience.NewAdmission(cfg.Admission),
		retry:     cfg.Retry,
		retention: cfg.Retention,
		pool:      pool,
		ids:       id.NewUUIDGenerator(),
		logger:    logging.Default().Named("executor"),
		now:       time.Now,
		sleep:     resilience.Sleep,
		tasks:     make(map[Handle]*taskState),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cond = sync.NewCond(&e.mu)
	e.loops.Go(e.dispatch)

	return e, nil
}

// Submit queues op and returns immediately. then, when non-nil, runs on the
// worker after the call completes. The task keeps running when ctx is
// cancelled; only its values (trace, request id) are inherited.
func (e *Executor) Submit(ctx context.Context, op riot.Operation, then Callback) Handle {
	now := e.now()
	t := &taskState{
		ctx:  context.WithoutCancel(ctx),
		op:   op,
		then: then,
		done: make(chan struct{}),
		rec: Record{
			Handle:      e.newHandle(),
			Operation:   "unknown",
			Status:      task.StatusPending,
			SubmittedAt: now,
		},
	}
	if op != nil {
		t.rec.Operation = op.Kind()
		t.rec.Key = op.Key()
		t.rec.Region = string(op.TargetRegion())
	}

	e.mu.Lock()
	e.pruneLocked(now)
	e.tasks[t.rec.Handle] = t

	var rejected error
	switch {
	case op == nil:
		rejected = fmt.Errorf("operation is required")
	case e.closed:
		rejected = ErrClosed
	}
	if rejected != nil {
		t.rec.Status = task.StatusFailed
		t.rec.LastError = rejected.Error()
		t.rec.FinishedAt = now
		close(t.done)
		e.mu.Unlock()
		e.logger.WarnContext(ctx, "task rejected", "handle", t.rec.Handle, "operation", t.rec.Operation, "error", rejected)
		return t.rec.Handle
	}

	e.queue = append(e.queue, t)
	e.pending.Add(1)
	e.mu.Unlock()
	e.cond.Signal()

	return t.rec.Handle
}

func (e *Executor) Status(h Handle) task.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tasks[h]
	if !ok {
		return task.StatusUnknown
	}
	return t.rec.Status
}

// StatusAll reports whether every handle resolved successfully. An empty
// list is trivially successful.
func (e *Executor) StatusAll(handles []Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, h := range handles {
		t, ok := e.tasks[h]
		if !ok || t.rec.Status != task.StatusSuccess {
			return false
		}
	}
	return true
}

func (e *Executor) Record(h Handle) (Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.tasks[h]
	if !ok {
		return Record{Handle: h, Status: task.StatusUnknown}, false
	}
	return t.rec, true
}

// Wait blocks until every handle is finished or ctx is done. Unknown handles
// are reported with StatusUnknown without waiting.
func (e *Executor) Wait(ctx context.Context, handles ...Handle) ([]Record, error) {
	out := make([]Record, 0, len(handles))
	for _, h := range handles {
		e.mu.Lock()
		t, ok := e.tasks[h]
		e.mu.Unlock()
		if !ok {
			out = append(out, Record{Handle: h, Status: task.StatusUnknown})
			continue
		}

		select {
		case <-t.done:
		case <-ctx.Done():
			return out, ctx.Err()
		}

		e.mu.Lock()
		out = append(out, t.rec)
		e.mu.Unlock()
	}
	return out, nil
}

// QueueLen is the number of accepted tasks not yet handed to a worker.
func (e *Executor) QueueLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Close stops intake, lets queued and running tasks finish and releases the
// worker pool. Tasks submitted after Close resolve Failed with ErrClosed.
func (e *Executor) Close(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()

	done := make(chan struct{})
	go func() {
		e.loops.Wait()
		e.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.pool.Release()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("close executor: %w", ctx.Err())
	}
}

func (e *Executor) dispatch() {
	for {
		e.mu.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			e.mu.Unlock()
			return
		}
		t := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()

		if err := e.pool.Submit(func() { e.run(t) }); err != nil {
			e.logger.ErrorContext(t.ctx, "schedule task failed", "handle", t.rec.Handle, "error", err)
			e.complete(t.ctx, t, task.StatusFailed, fmt.Errorf("schedule task: %w", err))
		}
	}
}

func (e *Executor) run(t *taskState) {
	ctx, span := startTaskSpan(t.ctx, t.rec.Operation)
	defer span.End()

	e.emit(ctx, t.op, e.snapshot(t))
	status, err := e.execute(ctx, t)
	e.complete(ctx, t, status, err)
}

func (e *Executor) execute(ctx context.Context, t *taskState) (task.Status, error) {
	logger := e.logger.With("handle", t.rec.Handle, "operation", t.rec.Operation, "key", t.rec.Key)

	for attempt := 1; ; attempt++ {
		e.mu.Lock()
		t.rec.Attempts = attempt
		e.mu.Unlock()

		res, err := e.invoke(ctx, t.op)
		if err == nil {
			if cbErr := e.callback(ctx, t, res, nil); cbErr != nil {
				logger.ErrorContext(ctx, "task callback failed", "error", cbErr)
				return task.StatusFailed, cbErr
			}
			return task.StatusSuccess, nil
		}

		class := riot.ClassOf(err)
		switch {
		case class.Retryable():
			hint, hasHint := riot.RetryAfterOf(err)
			delay, ok := e.retry.Next(attempt, hint, hasHint)
			if !ok {
				logger.WarnContext(ctx, "remote call retries exhausted", "attempts", attempt, "class", string(class), "error", err)
				return task.StatusFailed, fmt.Errorf("retries exhausted after %d attempts: %w", attempt, err)
			}
			logger.DebugContext(ctx, "retrying remote call", "attempt", attempt, "class", string(class), "delay", delay.String())
			if err := e.sleep(ctx, delay); err != nil {
				return task.StatusFailed, fmt.Errorf("retry wait interrupted: %w", err)
			}

		case class == riot.ClassNotFound:
			logger.DebugContext(ctx, "remote resource not found")
			if cbErr := e.callback(ctx, t, nil, err); cbErr != nil {
				logger.ErrorContext(ctx, "task callback failed", "error", cbErr)
				return task.StatusFailed, cbErr
			}
			return task.StatusFailed, err

		case class == riot.ClassClientError:
			logger.ErrorContext(ctx, "remote call rejected as client error", "error", err)
			if cbErr := e.callback(ctx, t, nil, err); cbErr != nil {
				logger.ErrorContext(ctx, "task callback failed", "error", cbErr)
				return task.StatusFailed, cbErr
			}
			return task.StatusFailed, err

		default:
			logger.ErrorContext(ctx, "remote call failed with unclassified error", "attempt", attempt, "class", string(class), "error", err)
			return task.StatusFailed, err
		}
	}
}

func (e *Executor) invoke(ctx context.Context, op riot.Operation) (riot.Result, error) {
	release, err := e.admission.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		res     riot.Result
		callErr error
		pc      panics.Catcher
	)
	pc.Try(func() { res, callErr = e.invoker.Invoke(ctx, op) })
	if r := pc.Recovered(); r != nil {
		return nil, fmt.Errorf("remote call panicked: %w", r.AsError())
	}
	return res, callErr
}

func (e *Executor) callback(ctx context.Context, t *taskState, res riot.Result, callErr error) error {
	if t.then == nil {
		return nil
	}

	var (
		cbErr error
		pc    panics.Catcher
	)
	pc.Try(func() { cbErr = t.then(ctx, res, callErr) })
	if r := pc.Recovered(); r != nil {
		return fmt.Errorf("callback panicked: %w", r.AsError())
	}
	if cbErr != nil {
		return fmt.Errorf("callback: %w", cbErr)
	}
	return nil
}

func (e *Executor) complete(ctx context.Context, t *taskState, status task.Status, err error) {
	e.mu.Lock()
	t.rec.Status = status
	t.rec.FinishedAt = e.now()
	if err != nil {
		t.rec.LastError = err.Error()
	}
	rec := t.rec
	close(t.done)
	e.mu.Unlock()

	e.pending.Done()
	e.emit(ctx, t.op, rec)
}

func (e *Executor) snapshot(t *taskState) Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return t.rec
}

func (e *Executor) emit(ctx context.Context, op riot.Operation, rec Record) {
	if e.recorder == nil {
		return
	}

	occurredAt := rec.SubmittedAt
	if rec.Status.Done() {
		occurredAt = rec.FinishedAt
	}
	event := task.Event{
		Handle:       string(rec.Handle),
		Operation:    rec.Operation,
		Key:          rec.Key,
		Region:       rec.Region,
		Params:       op,
		Status:       rec.Status,
		Attempts:     rec.Attempts,
		ErrorMessage: rec.LastError,
		OccurredAt:   occurredAt,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		event.TraceID = sc.TraceID().String()
		event.SpanID = sc.SpanID().String()
	}

	if err := e.recorder.UpsertEvent(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "record task event failed", "handle", rec.Handle, "status", string(rec.Status), "error", err)
	}
}

// pruneLocked forgets finished tasks older than the retention window. Callers
// hold e.mu.
func (e *Executor) pruneLocked(now time.Time) {
	if now.Sub(e.lastPrune) < pruneEvery {
		return
	}
	e.lastPrune = now
	for h, t := range e.tasks {
		if t.rec.Status.Done() && now.Sub(t.rec.FinishedAt) > e.retention {
			delete(e.tasks, h)
		}
	}
}

func (e *Executor) newHandle() Handle {
	v, err := e.ids.NewID()
	if err != nil {
		return Handle("local-" + strconv.FormatInt(e.seq.Add(1), 10))
	}
	return Handle(v)
}
