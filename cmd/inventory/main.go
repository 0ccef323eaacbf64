package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/ariefcatur/go-marketplace.git/internal/events"
	"github.com/ariefcatur/go-marketplace.git/internal/inventory"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/logger"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/backend"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.ServiceName += "-inventory"

	log := logger.New(logger.Config{Env: cfg.LogEnv, Level: cfg.LogLevel, ServiceName: cfg.ServiceName})
	defer func() { _ = log.Sync() }()

	if err := requireShared(cfg); err != nil {
		log.Fatal("storage", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage", zap.Error(err))
	}
	defer cleanup()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := redisx.Ping(ctx, rdb); err != nil {
		log.Fatal("redis ping", zap.Error(err))
	}

	svc := &inventory.Service{
		Store:       st,
		Dedup:       redisx.Dedup{Redis: rdb},
		ServiceName: cfg.ServiceName,
		Log:         log,
	}
	var adjusted *kafkax.Producer
	if cfg.EventsEnabled {
		adjusted = kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockAdjusted, 1024, log.Named("kafka"))
		adjusted.Start(context.Background())
		svc.Adjusted = adjusted
	}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.InventoryGroup, events.TopicOrderCreated, cfg.InventoryWorkers, log.Named("kafka"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("inventory consumer started",
			zap.String("group", cfg.InventoryGroup),
			zap.String("topic", events.TopicOrderCreated),
			zap.Int("workers", cfg.InventoryWorkers))
		return cons.Start(gctx, svc.HandleOrderCreated)
	})
	if err := g.Wait(); err != nil {
		log.Error("consumer exit", zap.Error(err))
	}
	if adjusted != nil {
		adjusted.Close()
		adjusted.WaitClosed()
	}
	log.Info("inventory stopped")
}

// requireShared accepts only storage the api process also writes to.
func requireShared(cfg config.Config) error {
	if cfg.Storage != config.BackendPostgres {
		return fmt.Errorf("inventory needs %s storage, got %q", config.BackendPostgres, cfg.Storage)
	}
	return nil
}
