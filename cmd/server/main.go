package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/card-inventory/backend/internal/api"
	"github.com/codyseavey/card-inventory/backend/internal/config"
	"github.com/codyseavey/card-inventory/backend/internal/database"
	"github.com/codyseavey/card-inventory/backend/internal/logging"
	"github.com/codyseavey/card-inventory/backend/internal/repository"
	"github.com/codyseavey/card-inventory/backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLevel := logger.Warn
	if logging.ParseLevel(cfg.LogLevel) == zerolog.DebugLevel {
		gormLevel = logger.Info
	}
	db, err := database.Open(database.Options{
		Driver:   cfg.DBDriver,
		Path:     cfg.DBPath,
		DSN:      cfg.DatabaseURL,
		LogLevel: gormLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	store := repository.New(db)
	catalog := services.NewPokemonTCGService(services.PokemonTCGOptions{
		BaseURL:   cfg.PokemonTCGBaseURL,
		APIKey:    cfg.PokemonTCGAPIKey,
		Timeout:   cfg.PokemonTCGTimeout,
		RateLimit: cfg.PokemonTCGRateLimit,
	})
	if cfg.PokemonTCGAPIKey == "" {
		log.Warn().Msg("POKEMON_TCG_API_KEY not set, catalog requests are unauthenticated")
	}

	router := api.SetupRouter(api.RouterOptions{
		Store:          store,
		Catalog:        catalog,
		Importer:       services.NewBulkImporter(store),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}
