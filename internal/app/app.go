package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/config"
	"github.com/riskibarqy/lol-stats/internal/executor"
	"github.com/riskibarqy/lol-stats/internal/interfaces/httpapi"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
	"github.com/riskibarqy/lol-stats/internal/platform/resilience"
	"github.com/riskibarqy/lol-stats/internal/usecase"
	"golang.org/x/sync/errgroup"
)

// App owns the long-lived worker components: the task executor, the HTTP
// control surface and the periodic sweep.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	repos     *repositories
	executor  *executor.Executor
	summoners *usecase.SummonerService
	pipeline  *usecase.IngestionPipeline
	server    *http.Server
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	recency, err := usecase.ParseRecency(cfg.FanOutRecency)
	if err != nil {
		return nil, err
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	client := riot.NewClient(riot.ClientConfig{
		BaseURL:       cfg.RiotBaseURL,
		StaticBaseURL: cfg.RiotStaticBaseURL,
		APIKey:        cfg.RiotAPIKey,
		Timeout:       cfg.RiotTimeout,
		Logger:        logger.Named("riot"),
	})

	exec, err := executor.New(client, executor.Config{
		Admission: resilience.AdmissionConfig{
			RatePerSecond: cfg.ExecutorRatePerSecond,
			Burst:         cfg.ExecutorBurst,
			Concurrency:   cfg.ExecutorConcurrency,
		},
		Retry: resilience.RetryPolicy{
			MaxRetries:   cfg.ExecutorMaxRetries,
			DefaultDelay: cfg.ExecutorRetryDelay,
		},
		PoolSize:  cfg.ExecutorPoolSize,
		Retention: cfg.ExecutorTaskRetention,
	}, executor.WithLogger(logger), executor.WithRecorder(repos.tasks))
	if err != nil {
		repos.close(logger)
		return nil, err
	}

	storage := usecase.NewStorageService(
		repos.summoners,
		repos.leagues,
		repos.matches,
		repos.staticData,
		usecase.StorageConfig{
			LeagueMinUpdateInterval: cfg.LeagueMinUpdateInterval,
			PartialRefreshTTL:       cfg.PartialRefreshTTL,
		},
		logger,
	)
	fanout := usecase.NewMatchFanOut(repos.matches, repos.summoners, storage, exec, usecase.FanOutConfig{
		MaxMatches: cfg.FanOutMaxMatches,
		Recency:    recency,
	}, logger)
	pipeline := usecase.NewIngestionPipeline(exec, storage, fanout, repos.summoners, logger)
	summoners := usecase.NewSummonerService(
		repos.summoners,
		repos.invalid,
		exec,
		storage,
		pipeline,
		usecase.NewFreshnessPolicy(usecase.FreshnessConfig{
			SummonerTTL:     cfg.SummonerTTL,
			MatchesTTL:      cfg.MatchesTTL,
			LeaguesTTL:      cfg.LeaguesTTL,
			RefreshCooldown: cfg.RefreshCooldown,
		}),
		cfg.NegativeCacheTTL,
		logger,
	)

	handler := httpapi.NewHandler(summoners, pipeline, exec, logger)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		repos:     repos,
		executor:  exec,
		summoners: summoners,
		pipeline:  pipeline,
		server:    server,
	}, nil
}

// Run serves HTTP and sweeps until ctx is cancelled, then drains the executor.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.runSweepLoop(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	defer a.repos.close(a.logger)

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	a.logger.Info("draining task executor", "queued", a.executor.QueueLen())
	if err := a.executor.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	a.logger.Info("worker stopped")
	return errors.Join(errs...)
}

func (a *App) runSweepLoop(ctx context.Context) {
	if len(a.cfg.SweepRegions) == 0 {
		a.logger.Info("sweep disabled", "reason", "SWEEP_REGIONS empty")
		return
	}

	ticker := time.NewTicker(a.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.sweepOnce(ctx)
		}
	}
}

// sweepOnce refreshes stale summoners and backfills missing leagues in every
// configured region. It returns the number of submitted tasks.
func (a *App) sweepOnce(ctx context.Context) int {
	submitted := 0
	for _, region := range a.cfg.SweepRegions {
		result, err := a.summoners.Sweep(ctx, region, a.cfg.SweepBatch)
		if err != nil {
			a.logger.ErrorContext(ctx, "sweep failed", "region", region, "error", err)
			continue
		}
		submitted += len(result.Handles)

		handles, err := a.pipeline.BackfillLeagues(ctx, region, a.cfg.SweepBatch)
		if err != nil {
			a.logger.ErrorContext(ctx, "backfill leagues failed", "region", region, "error", err)
			continue
		}
		submitted += len(handles)
	}
	if submitted > 0 {
		a.logger.InfoContext(ctx, "sweep tick", "tasks", submitted, "queued", a.executor.QueueLen())
	}
	return submitted
}
