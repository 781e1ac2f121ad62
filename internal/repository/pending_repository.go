package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labclass/scheduler/internal/model"
)

type PendingRepository struct {
	pool *pgxpool.Pool
}

func NewPendingRepository(pool *pgxpool.Pool) *PendingRepository {
	return &PendingRepository{pool: pool}
}

const pendingColumns = `id, date, time_slot, start_time, end_time, batch, subject, created_by, status, created_at`

// Create создаёт новую pending-заявку
func (r *PendingRepository) Create(ctx context.Context, p *model.PendingSchedule) error {
	query := `
		INSERT INTO pending_schedules (id, date, time_slot, start_time, end_time, batch, subject, created_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(
		ctx, query,
		p.ID,
		p.Date,
		p.TimeSlot,
		p.StartTime,
		p.EndTime,
		p.Batch,
		p.Subject,
		p.CreatedBy,
		p.Status,
		p.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("create pending schedule: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *PendingRepository) GetByID(ctx context.Context, id string) (*model.PendingSchedule, error) {
	query := `SELECT ` + pendingColumns + ` FROM pending_schedules WHERE id = $1`

	p, err := scanPending(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending schedule by id: %w", err)
	}

	return p, nil
}

// GetByDate получает все заявки на указанную дату
func (r *PendingRepository) GetByDate(ctx context.Context, date string) ([]*model.PendingSchedule, error) {
	query := `SELECT ` + pendingColumns + ` FROM pending_schedules WHERE date = $1`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get pending schedules by date: %w", err)
	}
	defer rows.Close()

	return collectPending(rows)
}

// GetByUser получает заявки пользователя в хронологическом порядке
func (r *PendingRepository) GetByUser(ctx context.Context, userID int64) ([]*model.PendingSchedule, error) {
	query := `SELECT ` + pendingColumns + ` FROM pending_schedules WHERE created_by = $1 ORDER BY date, created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get pending schedules by user: %w", err)
	}
	defer rows.Close()

	return collectPending(rows)
}

// List получает все заявки, отсортированные по дате.
// created_at вторичный ключ, чтобы порядок был стабильным.
func (r *PendingRepository) List(ctx context.Context, sortDesc bool) ([]*model.PendingSchedule, error) {
	direction := "ASC"
	if sortDesc {
		direction = "DESC"
	}

	query := `SELECT ` + pendingColumns + ` FROM pending_schedules ORDER BY date ` + direction + `, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending schedules: %w", err)
	}
	defer rows.Close()

	return collectPending(rows)
}

// Delete удаляет заявку по ID
func (r *PendingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pending_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pending schedule: %w", err)
	}
	return nil
}

// DeleteAll удаляет все заявки и возвращает число удалённых
func (r *PendingRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pending_schedules`)
	if err != nil {
		return 0, fmt.Errorf("delete all pending schedules: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteBefore удаляет заявки с датой раньше указанной
func (r *PendingRepository) DeleteBefore(ctx context.Context, date string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pending_schedules WHERE date < $1`, date)
	if err != nil {
		return 0, fmt.Errorf("delete pending schedules before date: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPending(row pgx.Row) (*model.PendingSchedule, error) {
	var p model.PendingSchedule
	err := row.Scan(
		&p.ID,
		&p.Date,
		&p.TimeSlot,
		&p.StartTime,
		&p.EndTime,
		&p.Batch,
		&p.Subject,
		&p.CreatedBy,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPending(rows pgx.Rows) ([]*model.PendingSchedule, error) {
	var schedules []*model.PendingSchedule
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending schedule: %w", err)
		}
		schedules = append(schedules, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending schedules: %w", err)
	}

	return schedules, nil
}
