package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labclass/scheduler/internal/model"
	"github.com/labclass/scheduler/internal/notify"
	"github.com/labclass/scheduler/internal/timeslot"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Горизонт приёма заявок: сегодня плюс 7 дней включительно
const admissionWindowDays = 7

const unknownProfessorName = "Unknown Professor"

// Тексты причин конфликта показываются пользователю как есть
const (
	conflictPendingReason  = "This time slot conflicts with a pending schedule request"
	conflictApprovedReason = "This time slot is already booked in the approved schedules"
)

type ScheduleService struct {
	pending  PendingRepository
	approved ApprovedRepository
	declined DeclinedRepository
	users    UserRepository
	locker   DateLocker
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewScheduleService(
	pending PendingRepository,
	approved ApprovedRepository,
	declined DeclinedRepository,
	users UserRepository,
	locker DateLocker,
	notifier notify.Notifier,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		pending:  pending,
		approved: approved,
		declined: declined,
		users:    users,
		locker:   locker,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitRequest данные новой заявки на слот
type SubmitRequest struct {
	Date      string
	StartTime string
	EndTime   string
	Batch     string
	Subject   string
	CreatedBy int64
}

// Submit проверяет заявку и сохраняет её как pending.
// Порядок проверок: обязательные поля -> окно приёма -> end > start ->
// конфликты. Первая провалившаяся проверка останавливает обработку.
// Проверка конфликтов и вставка выполняются под локом даты, чтобы две
// одновременные пересекающиеся заявки не прошли проверку обе.
func (s *ScheduleService) Submit(ctx context.Context, req SubmitRequest) (*model.PendingSchedule, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	schedule := &model.PendingSchedule{
		ID:        uuid.NewString(),
		Date:      req.Date,
		TimeSlot:  timeslot.Format(req.StartTime, req.EndTime),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Batch:     req.Batch,
		Subject:   req.Subject,
		CreatedBy: req.CreatedBy,
		Status:    model.ScheduleStatusPending,
		CreatedAt: s.now(),
	}

	err := s.locker.WithDateLock(ctx, req.Date, func(ctx context.Context) error {
		reason, err := s.CheckConflict(ctx, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if reason != "" {
			return &ConflictError{Reason: reason}
		}

		return s.pending.Create(ctx, schedule)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Schedule request submitted",
		zap.String("id", schedule.ID),
		zap.String("date", schedule.Date),
		zap.String("time_slot", schedule.TimeSlot),
		zap.Int64("created_by", schedule.CreatedBy),
	)

	return schedule, nil
}

// validate проверяет заявку и приводит времена к каноничной zero-padded
// форме. Неканоничное "9:30" проходит форматные проверки, но ломает
// строковое сравнение в проверке конфликтов, поэтому дальше validate
// времена живут только как "HH:MM".
func (s *ScheduleService) validate(req *SubmitRequest) error {
	switch {
	case req.Date == "":
		return &ValidationError{Field: "date", Message: "Date is required"}
	case req.StartTime == "":
		return &ValidationError{Field: "start_time", Message: "Start time is required"}
	case req.EndTime == "":
		return &ValidationError{Field: "end_time", Message: "End time is required"}
	case req.Batch == "":
		return &ValidationError{Field: "batch", Message: "Batch/Class is required"}
	case req.Subject == "":
		return &ValidationError{Field: "subject", Message: "Subject is required"}
	}

	today := s.now().Format(dateLayout)
	maxDate := s.now().AddDate(0, 0, admissionWindowDays).Format(dateLayout)
	if req.Date < today || req.Date > maxDate {
		return &ValidationError{Field: "date", Message: "Date must be within the next 7 days"}
	}

	start, err := timeslot.Normalize(req.StartTime)
	if err != nil {
		return &ValidationError{Field: "start_time", Message: "Invalid time format"}
	}
	end, err := timeslot.Normalize(req.EndTime)
	if err != nil {
		return &ValidationError{Field: "end_time", Message: "Invalid time format"}
	}

	// Для каноничной формы строковое сравнение эквивалентно числовому
	if end <= start {
		return &ValidationError{Field: "end_time", Message: "End time must be greater than start time"}
	}

	req.StartTime = start
	req.EndTime = end

	return nil
}

// CheckConflict проверяет кандидата против pending и approved слотов даты.
// Возвращает текст причины либо пустую строку. Pending проверяются первыми,
// на первом же пересечении дальше не идём.
func (s *ScheduleService) CheckConflict(ctx context.Context, date, startTime, endTime string) (string, error) {
	pendingSchedules, err := s.pending.GetByDate(ctx, date)
	if err != nil {
		return "", fmt.Errorf("check pending conflicts: %w", err)
	}

	for _, p := range pendingSchedules {
		if timeslot.Overlaps(p.TimeSlot, startTime, endTime) {
			return conflictPendingReason, nil
		}
	}

	approvedSlots, err := s.approved.GetByDate(ctx, date)
	if err != nil {
		return "", fmt.Errorf("check approved conflicts: %w", err)
	}

	for _, slot := range approvedSlots {
		if timeslot.Overlaps(slot.TimeSlot, startTime, endTime) {
			return conflictApprovedReason, nil
		}
	}

	return "", nil
}

// Approve переносит заявку в расписание: апсерт слота на её дату, затем
// удаление pending-записи. Удаляем только после успешной записи, чтобы
// при сбое заявка осталась на месте.
func (s *ScheduleService) Approve(ctx context.Context, id string) error {
	schedule, err := s.pending.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get pending schedule: %w", err)
	}
	if schedule == nil {
		return fmt.Errorf("schedule request %s: %w", id, ErrNotFound)
	}

	slot := &model.ApprovedSlot{
		Date:        schedule.Date,
		TimeSlot:    schedule.TimeSlot,
		Batch:       schedule.Batch,
		Subject:     schedule.Subject,
		ProfessorID: schedule.CreatedBy,
		ApprovedAt:  s.now(),
	}

	if err := s.approved.Upsert(ctx, slot); err != nil {
		return fmt.Errorf("approve schedule: %w", err)
	}

	if err := s.pending.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete pending after approve: %w", err)
	}

	s.logger.Info("Schedule approved",
		zap.String("id", id),
		zap.String("date", schedule.Date),
		zap.String("time_slot", schedule.TimeSlot),
	)

	s.notifySubmitter(ctx, schedule, "", true)

	return nil
}

// Decline переносит заявку в отклонённые с причиной (по умолчанию пустой).
// Pending-запись удаляется только после успешной записи отклонения.
func (s *ScheduleService) Decline(ctx context.Context, id, message string) error {
	schedule, err := s.pending.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get pending schedule: %w", err)
	}
	if schedule == nil {
		return fmt.Errorf("schedule request %s: %w", id, ErrNotFound)
	}

	declined := &model.DeclinedSchedule{
		ID:             schedule.ID,
		Date:           schedule.Date,
		TimeSlot:       schedule.TimeSlot,
		StartTime:      schedule.StartTime,
		EndTime:        schedule.EndTime,
		Batch:          schedule.Batch,
		Subject:        schedule.Subject,
		CreatedBy:      schedule.CreatedBy,
		CreatedAt:      schedule.CreatedAt,
		DeclineMessage: message,
		DeclinedAt:     s.now(),
	}

	if err := s.declined.Create(ctx, declined); err != nil {
		return fmt.Errorf("decline schedule: %w", err)
	}

	if err := s.pending.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete pending after decline: %w", err)
	}

	s.logger.Info("Schedule declined",
		zap.String("id", id),
		zap.String("date", schedule.Date),
		zap.String("time_slot", schedule.TimeSlot),
	)

	s.notifySubmitter(ctx, schedule, message, false)

	return nil
}

// ListPending возвращает заявки по дате (asc/desc), обогащённые именем
// автора. Имя резолвится один раз на каждого уникального created_by.
func (s *ScheduleService) ListPending(ctx context.Context, sortDesc bool) ([]*model.PendingSchedule, error) {
	schedules, err := s.pending.List(ctx, sortDesc)
	if err != nil {
		return nil, fmt.Errorf("list pending schedules: %w", err)
	}

	names := make(map[int64]string)
	for _, schedule := range schedules {
		name, ok := names[schedule.CreatedBy]
		if !ok {
			name = s.resolveName(ctx, schedule.CreatedBy)
			names[schedule.CreatedBy] = name
		}
		schedule.ProfessorName = name
	}

	return schedules, nil
}

// FilterPending фильтрует уже полученный список без повторного запроса.
// Подстрока ищется без учёта регистра в batch, subject, имени автора,
// дате и слоте времени.
func FilterPending(schedules []*model.PendingSchedule, term string) []*model.PendingSchedule {
	if term == "" {
		return schedules
	}

	term = strings.ToLower(term)
	filtered := make([]*model.PendingSchedule, 0, len(schedules))
	for _, s := range schedules {
		if strings.Contains(strings.ToLower(s.Batch), term) ||
			strings.Contains(strings.ToLower(s.Subject), term) ||
			strings.Contains(strings.ToLower(s.ProfessorName), term) ||
			strings.Contains(s.Date, term) ||
			strings.Contains(s.TimeSlot, term) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// MySchedules записи одного пользователя по всем трём статусам
type MySchedules struct {
	Pending  []*model.PendingSchedule  `json:"pending"`
	Approved []*model.ApprovedSlot     `json:"approved"`
	Declined []*model.DeclinedSchedule `json:"declined"`
}

// ListMySchedules собирает личный кабинет автора: его pending-заявки,
// одобренные слоты и отклонённые заявки с причинами
func (s *ScheduleService) ListMySchedules(ctx context.Context, userID int64) (*MySchedules, error) {
	pending, err := s.pending.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own pending schedules: %w", err)
	}

	approved, err := s.approved.GetByProfessor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own approved slots: %w", err)
	}

	declined, err := s.declined.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own declined schedules: %w", err)
	}

	mine := &MySchedules{Pending: pending, Approved: approved, Declined: declined}
	if mine.Pending == nil {
		mine.Pending = []*model.PendingSchedule{}
	}
	if mine.Approved == nil {
		mine.Approved = []*model.ApprovedSlot{}
	}
	if mine.Declined == nil {
		mine.Declined = []*model.DeclinedSchedule{}
	}

	return mine, nil
}

// PurgeAllPending удаляет все pending-заявки (ручная очистка админом)
func (s *ScheduleService) PurgeAllPending(ctx context.Context) (int64, error) {
	removed, err := s.pending.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge all pending: %w", err)
	}

	s.logger.Info("All pending schedules purged", zap.Int64("removed", removed))
	return removed, nil
}

// PurgeExpiredPending удаляет заявки, чья дата уже прошла
func (s *ScheduleService) PurgeExpiredPending(ctx context.Context) (int64, error) {
	today := s.now().Format(dateLayout)

	removed, err := s.pending.DeleteBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("purge expired pending: %w", err)
	}

	return removed, nil
}

func (s *ScheduleService) resolveName(ctx context.Context, userID int64) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to resolve professor name",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return unknownProfessorName
	}
	if user == nil || user.Name == "" {
		return unknownProfessorName
	}
	return user.Name
}

func (s *ScheduleService) notifySubmitter(ctx context.Context, schedule *model.PendingSchedule, message string, approved bool) {
	user, err := s.users.GetByID(ctx, schedule.CreatedBy)
	if err != nil {
		s.logger.Warn("Failed to load submitter for notification",
			zap.Int64("user_id", schedule.CreatedBy),
			zap.Error(err),
		)
		return
	}

	if approved {
		s.notifier.ScheduleApproved(ctx, user, schedule)
	} else {
		s.notifier.ScheduleDeclined(ctx, user, schedule, message)
	}
}
