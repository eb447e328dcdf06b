package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"trivia-client/internal/app"
	"trivia-client/internal/config"
	"trivia-client/internal/infra/file"
	"trivia-client/internal/infra/memory"
	"trivia-client/internal/infra/postgres"
	redisstore "trivia-client/internal/infra/redis"
	"trivia-client/internal/trivia"
)

// runtime holds the collaborators every command builds from config.
type runtime struct {
	cfg        config.Config
	client     *trivia.Client
	scores     *app.HighScores
	categories app.CategoryRepository
	closers    []func()
}

func newRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	rt := &runtime{
		cfg:    cfg,
		client: trivia.NewClient(cfg.API.BaseURL, config.Duration(cfg.API.Timeout, 10*time.Second)),
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = redisClient.Close() })
	}

	kv, err := rt.openStore(ctx, redisClient)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.scores = app.NewHighScores(kv)

	categoryTTL := config.Duration(cfg.Categories.TTL, 0)
	if redisClient != nil {
		rt.categories = redisstore.NewCategoryRepository(redisClient, rt.client, categoryTTL)
	} else {
		rt.categories = memory.NewCategoryRepository(rt.client, categoryTTL)
	}
	return rt, nil
}

func (rt *runtime) openStore(ctx context.Context, redisClient *redis.Client) (app.KeyValueStore, error) {
	switch rt.cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewKVStore(), nil
	case config.BackendFile, "":
		return file.NewKVStore(rt.cfg.Store.Path), nil
	case config.BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("store backend redis needs redis.addr")
		}
		return redisstore.NewKVStore(redisClient), nil
	case config.BackendPostgres:
		if _, err := postgres.Migrate(ctx, rt.cfg.Postgres.URL); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, rt.cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		return postgres.NewKVStore(pool), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", rt.cfg.Store.Backend)
}

func (rt *runtime) controllerOptions(logger *log.Logger) app.Options {
	return app.Options{
		FeedbackDelay: config.Duration(rt.cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay),
		Logger:        logger,
	}
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
