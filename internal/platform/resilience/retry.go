package resilience

import (
	"context"
	"time"
)

type RetryPolicy struct {
	// MaxRetries is the number of attempts allowed after the first one.
	MaxRetries int
	// DefaultDelay applies when the server gave no delay hint.
	DefaultDelay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		DefaultDelay: time.Second,
	}
}

func NormalizeRetryPolicy(p RetryPolicy) RetryPolicy {
	defaults := DefaultRetryPolicy()
	if p.MaxRetries < 0 {
		p.MaxRetries = defaults.MaxRetries
	}
	if p.DefaultDelay <= 0 {
		p.DefaultDelay = defaults.DefaultDelay
	}
	return p
}

// Next reports whether attempt (1-based, the one that just failed) may be
// followed by another, and how long to wait before it. A positive server hint
// wins over the default delay.
func (p RetryPolicy) Next(attempt int, hint time.Duration, hasHint bool) (time.Duration, bool) {
	if attempt > p.MaxRetries {
		return 0, false
	}
	if hasHint && hint > 0 {
		return hint, true
	}
	return p.DefaultDelay, true
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
