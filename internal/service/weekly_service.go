package service

import (
	"context"
	"fmt"
	"time"

	"github.com/labclass/scheduler/internal/model"
	"go.uber.org/zap"
)

// DaySchedule все одобренные слоты одной даты
type DaySchedule struct {
	Date  string                `json:"date"`
	Slots []*model.ApprovedSlot `json:"slots"`
}

// WeeklyService собирает скользящее недельное расписание
type WeeklyService struct {
	approved ApprovedRepository
	users    UserRepository
	logger   *zap.Logger
}

func NewWeeklyService(approved ApprovedRepository, users UserRepository, logger *zap.Logger) *WeeklyService {
	return &WeeklyService{
		approved: approved,
		users:    users,
		logger:   logger,
	}
}

// WeeklyView возвращает расписание на 7 дней начиная с today, по дню на
// элемент. День без слотов отдаётся с пустым списком, это не ошибка.
// Имена преподавателей резолвятся один раз на пользователя за весь вызов.
func (s *WeeklyService) WeeklyView(ctx context.Context, today time.Time) ([]DaySchedule, error) {
	names := make(map[int64]string)

	week := make([]DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i).Format(dateLayout)

		slots, err := s.approved.GetByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("weekly view for %s: %w", date, err)
		}

		for _, slot := range slots {
			name, ok := names[slot.ProfessorID]
			if !ok {
				name = s.resolveName(ctx, slot.ProfessorID)
				names[slot.ProfessorID] = name
			}
			slot.ProfessorName = name
		}

		if slots == nil {
			slots = []*model.ApprovedSlot{}
		}

		week = append(week, DaySchedule{Date: date, Slots: slots})
	}

	return week, nil
}

func (s *WeeklyService) resolveName(ctx context.Context, userID int64) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to resolve professor name",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return "Unknown"
	}
	if user == nil || user.Name == "" {
		return "Unknown"
	}
	return user.Name
}
