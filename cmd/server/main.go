package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schoolhub/portal-api/internal/api"
	"github.com/schoolhub/portal-api/internal/core/service"
	"github.com/schoolhub/portal-api/internal/infrastructure/config"
	mongodb "github.com/schoolhub/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/schoolhub/portal-api/internal/infrastructure/db/redis"
	"github.com/schoolhub/portal-api/internal/infrastructure/queue"
	"github.com/schoolhub/portal-api/internal/infrastructure/upstream"
	"github.com/schoolhub/portal-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Data stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Upstream signer and audit pipeline ---
	signer := upstream.NewSignerClient(upstream.Config{
		BaseURL:  cfg.Media.BaseURL,
		APIToken: cfg.Media.APIToken,
	})

	accessEvents := service.NewAccessEventService(mongodb.NewAccessEventRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, accessEvents, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, signer, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
