package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labclass/scheduler/internal/model"
)

type DeclinedRepository struct {
	pool *pgxpool.Pool
}

func NewDeclinedRepository(pool *pgxpool.Pool) *DeclinedRepository {
	return &DeclinedRepository{pool: pool}
}

// Create сохраняет отклонённую заявку (id совпадает с pending-записью)
func (r *DeclinedRepository) Create(ctx context.Context, d *model.DeclinedSchedule) error {
	query := `
		INSERT INTO declined_schedules (id, date, time_slot, start_time, end_time, batch, subject, created_by, created_at, decline_message, declined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(
		ctx, query,
		d.ID,
		d.Date,
		d.TimeSlot,
		d.StartTime,
		d.EndTime,
		d.Batch,
		d.Subject,
		d.CreatedBy,
		d.CreatedAt,
		d.DeclineMessage,
		d.DeclinedAt,
	)

	if err != nil {
		return fmt.Errorf("create declined schedule: %w", err)
	}

	return nil
}

// GetByUser получает отклонённые заявки пользователя, свежие первыми
func (r *DeclinedRepository) GetByUser(ctx context.Context, userID int64) ([]*model.DeclinedSchedule, error) {
	query := `
		SELECT id, date, time_slot, start_time, end_time, batch, subject, created_by, created_at, decline_message, declined_at
		FROM declined_schedules
		WHERE created_by = $1
		ORDER BY declined_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get declined schedules by user: %w", err)
	}
	defer rows.Close()

	var schedules []*model.DeclinedSchedule
	for rows.Next() {
		var d model.DeclinedSchedule
		err := rows.Scan(
			&d.ID,
			&d.Date,
			&d.TimeSlot,
			&d.StartTime,
			&d.EndTime,
			&d.Batch,
			&d.Subject,
			&d.CreatedBy,
			&d.CreatedAt,
			&d.DeclineMessage,
			&d.DeclinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan declined schedule: %w", err)
		}
		schedules = append(schedules, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate declined schedules: %w", err)
	}

	return schedules, nil
}
