package executor

import (
	"time"

	"github.com/riskibarqy/lol-stats/internal/platform/resilience"
)

type Config struct {
	Admission resilience.AdmissionConfig
	Retry     resilience.RetryPolicy
	// PoolSize is the number of worker goroutines draining the queue. Workers
	// sleeping through a retry delay hold their slot.
	PoolSize int
	// Retention is how long finished task records stay pollable.
	Retention time.Duration
}

func DefaultConfig() Config {
	return Config{
		Admission: resilience.DefaultAdmissionConfig(),
		Retry:     resilience.DefaultRetryPolicy(),
		PoolSize:  16,
		Retention: time.Hour,
	}
}

func normalizeConfig(cfg Config) Config {
	defaults := DefaultConfig()
	cfg.Admission = resilience.NormalizeAdmissionConfig(cfg.Admission)
	cfg.Retry = resilience.NormalizeRetryPolicy(cfg.Retry)
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaults.PoolSize
	}
	if cfg.Retention <= 0 {
		cfg.Retention = defaults.Retention
	}
	return cfg
}
