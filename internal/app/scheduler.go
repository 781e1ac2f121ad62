package app

import (
	"context"
	"time"

	"github.com/labclass/scheduler/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	scheduleService *service.ScheduleService
	logger          *zap.Logger
	stopChan        chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(scheduleService *service.ScheduleService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduleService: scheduleService,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runPendingCleanupTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runPendingCleanupTask раз в сутки удаляет заявки, чья дата уже прошла.
// Заявки принимаются только на ближайшие 7 дней, поэтому всё что старше
// сегодняшней даты рассмотрено быть не может.
func (s *Scheduler) runPendingCleanupTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.purgeExpired(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeExpired(ctx)
		case <-s.stopChan:
			s.logger.Info("Pending cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Pending cleanup task cancelled")
			return
		}
	}
}

func (s *Scheduler) purgeExpired(ctx context.Context) {
	removed, err := s.scheduleService.PurgeExpiredPending(ctx)
	if err != nil {
		s.logger.Error("Failed to purge expired pending schedules", zap.Error(err))
		return
	}

	if removed > 0 {
		s.logger.Info("Purged expired pending schedules", zap.Int64("removed", removed))
	}
}
