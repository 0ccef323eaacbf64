package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/ariefcatur/go-marketplace.git/internal/events"
	"github.com/ariefcatur/go-marketplace.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/logger"
	"github.com/ariefcatur/go-marketplace.git/internal/storage"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/backend"
	"github.com/ariefcatur/go-marketplace.git/internal/storage/notify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(logger.Config{Env: cfg.LogEnv, Level: cfg.LogLevel, ServiceName: cfg.ServiceName})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage", zap.Error(err))
	}
	defer cleanup()

	var st storage.Storage = store
	var producers []*kafkax.Producer
	if cfg.EventsEnabled {
		orders := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOrderCreated, 1024, log.Named("kafka"))
		products := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicProductDeleted, 1024, log.Named("kafka"))
		producers = append(producers, orders, products)
		st = notify.Wrap(store, orders, products, cfg.ServiceName, log)
	}

	router := httpx.NewAPI(st, cfg.SessionTTL, log)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	// producers stop only after the server has drained
	pctx, pcancel := context.WithCancel(context.Background())
	defer pcancel()
	for _, p := range producers {
		p.Start(pctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exit", zap.Error(err))
	}

	for _, p := range producers {
		p.Close()
	}
	for _, p := range producers {
		p.WaitClosed()
	}
}
