package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/lol-stats/internal/config"
	"github.com/riskibarqy/lol-stats/internal/domain/league"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
	"github.com/riskibarqy/lol-stats/internal/domain/task"
	"github.com/riskibarqy/lol-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lol-stats/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/lol-stats/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/lol-stats/internal/platform/logging"
)

type repositories struct {
	summoners  summoner.Repository
	invalid    summoner.InvalidQueryRepository
	leagues    league.Repository
	matches    match.Repository
	staticData staticdata.Repository
	tasks      task.Recorder

	db    *sqlx.DB
	redis *goredis.Client
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*repositories, error) {
	repos := &repositories{}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		store := memory.NewStore()
		repos.summoners = store.Summoners()
		repos.invalid = memory.NewInvalidQueryRepository()
		repos.leagues = store.Leagues()
		repos.matches = store.Matches()
		repos.staticData = store.StaticData()
		repos.tasks = store.TaskDispatches()
		logger.Warn("using in-memory store, data is lost on restart")
	default:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos.db = db
		repos.summoners = postgres.NewSummonerRepository(db)
		repos.invalid = postgres.NewInvalidQueryRepository(db)
		repos.leagues = postgres.NewLeagueRepository(db)
		repos.matches = postgres.NewMatchRepository(db)
		repos.staticData = postgres.NewStaticDataRepository(db)
		repos.tasks = postgres.NewTaskDispatchRepository(db)
		logger.Info("postgres store connected", "db_name", config.DBName(cfg.DBURL))
	}

	// A shared redis negative cache lets several workers skip the same
	// unknown names.
	if cfg.RedisURL != "" {
		client, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			repos.close(logger)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		repos.redis = client
		repos.invalid = redisrepo.NewInvalidQueryRepository(client)
		logger.Info("redis negative cache enabled")
	}

	return repos, nil
}

func (r *repositories) close(logger *logging.Logger) {
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			logger.Warn("close redis failed", "error", err)
		}
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			logger.Warn("close postgres failed", "error", err)
		}
	}
}
