// Package backend builds the process-wide storage from configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/ariefcatur/go-marketplace.git/internal/postgres"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
	"github.com/ariefcatur/go-marketplace.git/internal/session"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/memory"
	pgstore "github.com/ariefcatur/go-marketplace.git/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open returns the storage selected by cfg with exactly one session backend
// wired in. The returned func releases every connection Open made.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (storage.Storage, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := validate(cfg); err != nil {
		return nil, nil, err
	}

	var (
		closers []func()
		pool    *pgxpool.Pool
		rdb     *redis.Client
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (storage.Storage, func(), error) {
		cleanup()
		return nil, nil, err
	}

	if cfg.Storage == config.BackendPostgres || cfg.Sessions == config.BackendPostgres {
		var err error
		pool, err = postgres.Connect(ctx, postgres.Options{
			Host:           cfg.DB.Host,
			Port:           cfg.DB.Port,
			User:           cfg.DB.User,
			Password:       cfg.DB.Password,
			Database:       cfg.DB.Name,
			MaxConns:       int32(cfg.DB.MaxConns),
			IdleTimeout:    cfg.DB.IdleTimeout,
			ConnectTimeout: cfg.DB.ConnectTimeout,
		})
		if err != nil {
			return fail(fmt.Errorf("db connect: %w", err))
		}
		closers = append(closers, pool.Close)
		log.Info("postgres connected", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))
	}

	var sessions session.Store
	switch cfg.Sessions {
	case config.BackendMemory:
		sessions = session.NewMemoryStore(cfg.SessionPruneInterval)
	case config.BackendPostgres:
		pg, err := session.NewPGStore(ctx, pool, session.DefaultTable)
		if err != nil {
			return fail(err)
		}
		pctx, stop := context.WithCancel(context.Background())
		go session.RunPruner(pctx, pg, cfg.SessionPruneInterval, log.Named("session"))
		closers = append(closers, stop)
		sessions = pg
	case config.BackendRedis:
		rdb = redisx.New(cfg.RedisAddr)
		closers = append(closers, func() { _ = rdb.Close() })
		if err := redisx.Ping(ctx, rdb); err != nil {
			return fail(fmt.Errorf("redis ping: %w", err))
		}
		sessions = session.NewRedisStore(rdb)
	}

	var st storage.Storage
	switch cfg.Storage {
	case config.BackendMemory:
		st = memory.New(sessions)
	case config.BackendPostgres:
		pgs := pgstore.New(pool, sessions)
		if err := pgs.Migrate(ctx); err != nil {
			return fail(err)
		}
		st = pgs
	}

	log.Info("storage ready", zap.String("storage", cfg.Storage), zap.String("sessions", cfg.Sessions))
	return st, cleanup, nil
}

func validate(cfg config.Config) error {
	switch cfg.Storage {
	case config.BackendMemory, config.BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	switch cfg.Sessions {
	case config.BackendMemory, config.BackendPostgres, config.BackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", cfg.Sessions)
	}
	return nil
}
