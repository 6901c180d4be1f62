package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/zeitgeist/internal/auth"
	"github.com/freeeve/zeitgeist/internal/config"
	"github.com/freeeve/zeitgeist/internal/handler"
	"github.com/freeeve/zeitgeist/internal/logger"
	"github.com/freeeve/zeitgeist/internal/narrative"
	"github.com/freeeve/zeitgeist/internal/repository"
	"github.com/freeeve/zeitgeist/internal/repository/postgres"
	redisrepo "github.com/freeeve/zeitgeist/internal/repository/redis"
	"github.com/freeeve/zeitgeist/internal/repository/sqlite"
	"github.com/freeeve/zeitgeist/internal/service"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

const sqlitePrefix = "sqlite:"

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("databaseURL", cfg.DatabaseURL).Bool("devMode", cfg.DevMode).Msg("Config loaded")

	// Scenario and balance
	scenario := culture.DefaultScenario()
	if cfg.ScenarioPath != "" {
		sc, err := culture.LoadScenario(cfg.ScenarioPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ScenarioPath).Msg("Scenario load failed")
		}
		scenario = sc
	}
	tuning := culture.DefaultTuning()
	if cfg.TuningPath != "" {
		tun, err := culture.LoadTuning(cfg.TuningPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.TuningPath).Msg("Tuning load failed")
		}
		tuning = tun
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	var (
		turnRepo   repository.TurnRepository
		resultRepo repository.ResultRepository
	)
	if path, ok := strings.CutPrefix(cfg.DatabaseURL, sqlitePrefix); ok {
		store, err := sqlite.Open(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("SQLite open failed")
		}
		defer store.Close()
		turnRepo, resultRepo = store, store
	} else {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Database migration failed")
		}
		turnRepo, resultRepo = postgres.NewTurnRepo(db), postgres.NewResultRepo(db)
	}

	// Redis
	redisClient, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection failed")
	}
	defer redisClient.Close()

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	gameSvc := service.NewGameService(scenario, tuning, redisClient, turnRepo, resultRepo, wsHub)
	gameSvc.SetNarrative(narrative.Headlines)
	gameSvc.SetViewTTL(cfg.ViewTTL)

	// Idle session eviction
	reaper := service.NewReaper(gameSvc, time.Minute)

	root := handler.NewRouter(handler.RouterConfig{
		GameService:    gameSvc,
		JWT:            jwtMgr,
		Hub:            wsHub,
		AllowedOrigins: cfg.AllowedOrigins,
		DevMode:        cfg.DevMode,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go reaper.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("scenario", scenario.Name).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
