package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/labclass/scheduler/internal/app"
	"github.com/labclass/scheduler/internal/config"
	"github.com/labclass/scheduler/internal/controller"
	"github.com/labclass/scheduler/internal/notify"
	"github.com/labclass/scheduler/internal/repository"
	"github.com/labclass/scheduler/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting lab class scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключаемся к базе
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	pendingRepo := repository.NewPendingRepository(pool)
	approvedRepo := repository.NewApprovedRepository(pool)
	declinedRepo := repository.NewDeclinedRepository(pool)
	dateLocker := repository.NewDateLocker(pool)

	// Уведомления: включаются только при заданном токене
	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.TelegramToken != "" {
		tgNotifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, logger)
		if err != nil {
			logger.Warn("Failed to init telegram notifier, notifications disabled", zap.Error(err))
		} else {
			notifier = tgNotifier
			logger.Info("Telegram notifications enabled")
		}
	}

	// Сервисы
	scheduleService := service.NewScheduleService(
		pendingRepo, approvedRepo, declinedRepo, userRepo, dateLocker, notifier, logger,
	)
	weeklyService := service.NewWeeklyService(approvedRepo, userRepo, logger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, logger)

	// Фоновая чистка просроченных заявок
	scheduler := app.NewScheduler(scheduleService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// HTTP
	e := echo.New()
	e.HideBanner = true
	handler := controller.NewHandler(scheduleService, weeklyService, authService, logger)
	handler.Register(e)

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
