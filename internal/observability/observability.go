// Package observability starts the tracing and profiling exporters the
// worker reports to.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/lol-stats/internal/config"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Shutdown flushes whatever Setup started. It is safe to call when
// nothing was enabled.
type Shutdown func(context.Context) error

// Setup wires Uptrace as the global OpenTelemetry provider and starts a
// Pyroscope profiler, each only when enabled in cfg.
func Setup(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	var stops []Shutdown
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			errs = append(errs, stops[i](ctx))
		}
		return errors.Join(errs...)
	}

	if stop := startTracing(cfg, logger); stop != nil {
		stops = append(stops, stop)
	}
	stop, err := startProfiling(cfg, logger)
	if err != nil {
		_ = shutdown(context.Background())
		return nil, err
	}
	if stop != nil {
		stops = append(stops, stop)
	}
	return shutdown, nil
}

func startTracing(cfg config.Config, logger *logging.Logger) Shutdown {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Info("tracing disabled", "uptrace_enabled", cfg.UptraceEnabled)
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("tracing enabled", "exporter", "uptrace")
	return uptrace.Shutdown
}

// profileTypes favours allocation and goroutine profiles: the worker is
// mostly waiting on the rate limiter and decoding responses.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexDuration,
}

func startProfiling(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags:            map[string]string{"env": cfg.AppEnv, "version": cfg.ServiceVersion},
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	logger.Info("profiling enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return func(context.Context) error { return profiler.Stop() }, nil
}
