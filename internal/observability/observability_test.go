package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/lol-stats/internal/config"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

func TestSetup_NothingEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "all disabled", cfg: config.Config{ServiceName: "lol-stats-worker", AppEnv: config.EnvDev}},
		{name: "uptrace without dsn", cfg: config.Config{UptraceEnabled: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := Setup(tc.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("setup: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestSetup_NilLogger(t *testing.T) {
	shutdown, err := Setup(config.Config{}, nil)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
