package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"arena/core/internal/config"
	"arena/core/internal/directory"
	"arena/core/internal/handler"
	"arena/core/internal/model"
	"arena/core/internal/repository"
	"arena/core/internal/service"
)

func main() {
	// 1. Load configuration
	cfgPath := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Open the relational store
	db, err := config.NewDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	if cfg.Database.AutoMigrateEnabled() {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed", zap.String("driver", cfg.Database.Driver))
	}
	store := repository.NewGormStore(db)

	// 4. State store backing the directory cache
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		stateStore = repository.NewRedisStateStore(redisClient, "arena:core")
		logger.Info("using Redis state store")
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 5. Users service directory
	if cfg.Directory.BaseURL == "" {
		logger.Warn("directory.base_url is empty; participant lookups will fail")
	}
	userDirectory := directory.NewCachedDirectory(
		directory.NewHTTPDirectory(cfg.Directory.BaseURL, cfg.Directory.Timeout, logger),
		stateStore,
		cfg.Directory.CacheTTL,
		logger,
	)

	// 6. Services
	teamService := service.NewTeamService(store, logger)
	membershipService := service.NewMembershipService(store, logger)
	invitationService := service.NewInvitationService(store, logger, cfg.Invitation.TTL)
	competitionService := service.NewCompetitionService(store)
	applicationService := service.NewApplicationService(store, teamService)
	rosterService := service.NewRosterService(store, userDirectory, service.RosterOptions{
		LookupTimeout: cfg.Directory.Timeout,
		Concurrency:   cfg.Directory.Concurrency,
	}, logger)

	// 7. Handlers and router
	teamHandler := handler.NewTeamHandler(teamService, membershipService, invitationService, logger)
	competitionHandler := handler.NewCompetitionHandler(competitionService, rosterService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, logger)
	router := handler.SetupRouter(cfg, logger, teamHandler, competitionHandler, applicationHandler)

	// 8. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 9. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server exited gracefully")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
