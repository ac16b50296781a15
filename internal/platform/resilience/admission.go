package resilience

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

type AdmissionConfig struct {
	// RatePerSecond is the sustained number of calls allowed to start per second.
	RatePerSecond float64
	Burst         int
	// Concurrency bounds calls in flight at the same time.
	Concurrency int
}

func DefaultAdmissionConfig() AdmissionConfig {
	return AdmissionConfig{
		RatePerSecond: 0.8,
		Burst:         1,
		Concurrency:   1,
	}
}

func NormalizeAdmissionConfig(cfg AdmissionConfig) AdmissionConfig {
	defaults := DefaultAdmissionConfig()
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = defaults.RatePerSecond
	}
	if cfg.Burst < 1 {
		cfg.Burst = defaults.Burst
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = defaults.Concurrency
	}
	return cfg
}

// Admission gates calls to a shared remote dependency. A caller first takes a
// concurrency slot and only then waits for a rate token, so the start of every
// admitted call is spaced by the limiter no matter how many callers queue up.
type Admission struct {
	limiter *rate.Limiter
	slots   *semaphore.Weighted
	cfg     AdmissionConfig
}

func NewAdmission(cfg AdmissionConfig) *Admission {
	cfg = NormalizeAdmissionConfig(cfg)
	return &Admission{
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		slots:   semaphore.NewWeighted(int64(cfg.Concurrency)),
		cfg:     cfg,
	}
}

// Acquire blocks until the caller may start one call. The returned release
// func must be called once the call has finished.
func (a *Admission) Acquire(ctx context.Context) (func(), error) {
	if err := a.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire admission slot: %w", err)
	}
	if err := a.limiter.Wait(ctx); err != nil {
		a.slots.Release(1)
		return nil, fmt.Errorf("wait for rate token: %w", err)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		a.slots.Release(1)
	}, nil
}

func (a *Admission) Config() AdmissionConfig {
	return a.cfg
}

// Interval is the steady-state spacing between admitted calls.
func (a *Admission) Interval() time.Duration {
	return time.Duration(float64(time.Second) / a.cfg.RatePerSecond)
}
