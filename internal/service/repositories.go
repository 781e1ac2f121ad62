package service

import (
	"context"

	"github.com/labclass/scheduler/internal/model"
)

// Интерфейсы хранилища объявлены на стороне потребителя, реализации
// живут в internal/repository. В тестах подменяются in-memory фейками.

type PendingRepository interface {
	Create(ctx context.Context, p *model.PendingSchedule) error
	GetByID(ctx context.Context, id string) (*model.PendingSchedule, error)
	GetByDate(ctx context.Context, date string) ([]*model.PendingSchedule, error)
	GetByUser(ctx context.Context, userID int64) ([]*model.PendingSchedule, error)
	List(ctx context.Context, sortDesc bool) ([]*model.PendingSchedule, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type ApprovedRepository interface {
	Upsert(ctx context.Context, slot *model.ApprovedSlot) error
	GetByDate(ctx context.Context, date string) ([]*model.ApprovedSlot, error)
	GetByProfessor(ctx context.Context, professorID int64) ([]*model.ApprovedSlot, error)
}

type DeclinedRepository interface {
	Create(ctx context.Context, d *model.DeclinedSchedule) error
	GetByUser(ctx context.Context, userID int64) ([]*model.DeclinedSchedule, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// DateLocker сериализует read-then-write последовательности на одну дату
type DateLocker interface {
	WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error
}
