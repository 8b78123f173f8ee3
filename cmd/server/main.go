package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/praxis-platform/praxis-backend/internal/authz"
	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/database"
	"github.com/praxis-platform/praxis-backend/internal/handler"
	"github.com/praxis-platform/praxis-backend/internal/logger"
	"github.com/praxis-platform/praxis-backend/internal/repository"
	"github.com/praxis-platform/praxis-backend/internal/router"
	"github.com/praxis-platform/praxis-backend/internal/service"
	"github.com/praxis-platform/praxis-backend/internal/validator"
	"github.com/praxis-platform/praxis-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	zlog.Logger = log
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Praxis Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	permRepo := repository.NewPermissionRepository(pool)
	trainingRepo := repository.NewTrainingRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	certRepo := repository.NewCertificateRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	permissionService := service.NewPermissionService(userRepo, roleRepo, permRepo, rdb, cfg.PermCacheTTL)
	userService := service.NewUserService(userRepo, classRepo, authService)
	roleService := service.NewRoleService(roleRepo, permRepo, userRepo, permissionService)
	trainingService := service.NewTrainingService(trainingRepo)
	classService := service.NewClassService(classRepo, trainingRepo, userRepo, certRepo)
	studentService := service.NewStudentService(studentRepo, certRepo)
	campaignService := service.NewCampaignService(campaignRepo, rdb, cfg.PlatformFeeRate, cfg.PermCacheTTL)
	dashboardService := service.NewDashboardService(dashboardRepo)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(userService, permissionService),
		User:      handler.NewUserHandler(userService),
		Role:      handler.NewRoleHandler(roleService, permissionService),
		Training:  handler.NewTrainingHandler(trainingService),
		Class:     handler.NewClassHandler(classService),
		Student:   handler.NewStudentHandler(studentService),
		Campaign:  handler.NewCampaignHandler(campaignService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Media:     handler.NewMediaHandler(mediaService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	campaignCloser := worker.NewCampaignCloser(campaignService)
	if err := campaignCloser.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start campaign closer")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	registry := authz.NewRegistry()
	r := router.SetupRouter(authService, permissionService, registry, handlers, cfg)

	log.Info().Int("declared_routes", len(registry.Routes())).Msg("Route permission declarations registered")

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	campaignCloser.Stop()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
