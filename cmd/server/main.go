package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/varadhi-be/internal/config"
	"github.com/hongminglow/varadhi-be/internal/logging"
	"github.com/hongminglow/varadhi-be/internal/models"
	"github.com/hongminglow/varadhi-be/internal/server"
	"github.com/hongminglow/varadhi-be/internal/storage"
	"github.com/hongminglow/varadhi-be/internal/storage/memory"
	"github.com/hongminglow/varadhi-be/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	if envErr != nil {
		logger.Info("no .env file found; relying on existing environment")
	}

	store, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("init store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info("varadhi backend listening", zap.String("addr", cfg.HTTPAddress()), zap.String("store", cfg.StoreDriver))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		var listings []models.Listing
		if cfg.SeedFile != "" {
			seeded, err := memory.LoadSeed(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
			listings = seeded
		}
		logger.Info("using in-memory store", zap.Int("listings", len(listings)))
		return memory.NewStore(listings...), nil
	}

	return postgres.NewStore(ctx, cfg.DatabaseURL, postgres.Options{
		MinConns:        cfg.PoolMin,
		MaxConns:        cfg.PoolMax,
		ConnectTimeout:  cfg.ConnectTimeout,
		BootstrapSchema: cfg.BootstrapSchema,
	}, logger)
}
