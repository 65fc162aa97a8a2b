package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"wordpecker/internal/config"
	"wordpecker/internal/content"
	"wordpecker/internal/database"
	"wordpecker/internal/handlers"
	"wordpecker/internal/repository"
	"wordpecker/internal/scheduler"
	"wordpecker/internal/service"
	"wordpecker/internal/session"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("type", cfg.DatabaseType).Msg("database connection established")

	migrationsDir := filepath.Join(cfg.MigrationsPath, db.Dialect.MigrationsSubdir())
	if err := db.RunMigrations(migrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	levelRepo := repository.NewLevelRepository(db)
	listRepo := repository.NewListRepository(db)

	if err := levelRepo.SeedDefaultLevels(); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default levels")
	}

	// Content provider: Gemini when an API key is configured, otherwise the
	// built-in word sets keep the app fully usable offline.
	var provider content.Provider
	if cfg.GeminiAPIKey != "" {
		provider = content.NewGemini(content.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		log.Info().Msg("content generation enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, running with built-in content only")
	}

	// Initialize services
	registry := session.NewRegistry(cfg.SessionTTL)
	lessonService := service.NewLessonService(levelRepo, provider, registry, rand.New(rand.NewSource(time.Now().UnixNano())))
	listService := service.NewListService(listRepo, provider)

	digestService, err := service.NewDigestService(cfg.AWSRegion, cfg.EmailFrom, cfg.DigestRecipients, levelRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize digest service")
	}
	digestScheduler := scheduler.New(digestService, cfg.DigestHour)
	digestScheduler.Start()
	defer digestScheduler.Stop()

	// Initialize handlers
	levelHandler := handlers.NewLevelHandler(lessonService)
	sessionHandler := handlers.NewSessionHandler(lessonService, cfg.SourceLanguage, cfg.TargetLanguage)
	listHandler := handlers.NewListHandler(listService)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, levelHandler, sessionHandler, listHandler)

	// Start background session cleanup
	go purgeExpiredSessions(registry, cfg.SessionTTL)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handlers.LogRequests(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// purgeExpiredSessions periodically drops abandoned learning sessions.
func purgeExpiredSessions(registry *session.Registry, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if n := registry.PurgeExpired(); n > 0 {
			log.Info().Int("count", n).Msg("expired sessions purged")
		}
	}
}
