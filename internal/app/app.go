package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	importer *importer.Worker
}

type stores struct {
	questions interface {
		catalog.QuestionStore
		quiz.Store
	}
	categories catalog.CategoryStore
}

type redisPinger struct{ client *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx).Err() }

// New bootstraps logger, metrics, storage, cache and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}
	var deps []server.Pinger

	var st stores
	switch cfg.Store.Driver {
	case config.DriverMemory:
		mem := memory.NewSeeded()
		st = stores{questions: mem, categories: mem}
		logger.Warn().Msg("using in-memory store; data is lost on restart")
	default:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		if cfg.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = int32(cfg.Postgres.MaxConns)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		deps = append(deps, pool)

		if cfg.Store.MigrateOnStart {
			db := stdlib.OpenDBFromPool(pool)
			err := migrations.Run(ctx, db, migrations.CommandUp)
			_ = db.Close()
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info().Msg("migrations applied")
		}

		q := queries.New(pool)
		st = stores{
			questions:  repository.NewQuestionRepository(q),
			categories: repository.NewCategoryRepository(q),
		}
	}

	var categoryCache catalog.CategoryCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		categoryCache = catalog.NewCache(a.redis, cfg.Catalog.CategoryCacheTTL)
		deps = append(deps, redisPinger{client: a.redis})
	} else {
		logger.Info().Msg("REDIS_ADDR not set; category cache disabled")
	}

	collector := metrics.NewCollector("trivia")

	catalogSvc := catalog.NewService(st.questions, st.categories, categoryCache, catalog.ServiceOptions{
		DefaultCurrentCategory: cfg.Catalog.DefaultCurrentCategory,
		Metrics:                collector,
	})
	selector := quiz.NewSelector(st.questions, quiz.SelectorOptions{
		Rand:    quiz.NewRandSource(cfg.Quiz.RandomSeed),
		Metrics: collector,
	})

	if cfg.Importer.Interval > 0 {
		client, err := importer.NewOpenTDBClient(cfg.Importer.BaseURL, nil)
		if err != nil {
			a.close()
			return nil, err
		}
		imp := importer.New(client, catalogSvc, st.categories, logger, importer.Options{Difficulty: cfg.Importer.Difficulty})
		a.importer = importer.NewWorker(imp, cfg.Importer.BatchSize, cfg.Importer.Interval, cfg.Importer.Timeout, logger)
	}

	router := server.NewRouter(cfg, logger, collector, server.Handlers{
		Catalog: catalog.NewHTTPHandler(catalogSvc, logger),
		Quiz:    quiz.NewHTTPHandler(selector, logger),
	}, deps...)
	a.http = server.NewHTTPServer(cfg, router)

	return a, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.importer != nil {
		go a.importer.Run()
	}

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	if a.importer != nil {
		a.importer.Stop()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
