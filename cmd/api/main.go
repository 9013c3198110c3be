package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Rami23dz/insurance-claims-api/internal/api"
	"github.com/Rami23dz/insurance-claims-api/internal/infrastructure/config"
	mongodb "github.com/Rami23dz/insurance-claims-api/internal/infrastructure/db/mongo"
	redisdb "github.com/Rami23dz/insurance-claims-api/internal/infrastructure/db/redis"
	"github.com/Rami23dz/insurance-claims-api/internal/infrastructure/extract"
	"github.com/Rami23dz/insurance-claims-api/internal/infrastructure/render"
	"github.com/Rami23dz/insurance-claims-api/internal/infrastructure/storage"
	"github.com/Rami23dz/insurance-claims-api/pkg/logger"
)

// @title        Insurance Claims Processing API
// @version      1.0
// @description  Backend for uploading, extracting, and generating insurance claim documents.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.NewDocumentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure document indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	store, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise file store")
	}

	renderer := render.NewChromeRenderer()
	defer renderer.Close()

	e := api.NewRouter(api.Dependencies{
		DB:        db,
		Redis:     rdb,
		Store:     store,
		Extractor: extract.NewPDFExtractor(),
		Renderer:  renderer,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
