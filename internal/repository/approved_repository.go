package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labclass/scheduler/internal/model"
)

type ApprovedRepository struct {
	pool *pgxpool.Pool
}

func NewApprovedRepository(pool *pgxpool.Pool) *ApprovedRepository {
	return &ApprovedRepository{pool: pool}
}

// Upsert добавляет слот в расписание даты. Конфликт по (date, time_slot)
// перезаписывает только этот слот, соседние слоты даты не трогаются -
// это и есть аддитивный merge. Повтор по тому же ключу = last-write-wins.
func (r *ApprovedRepository) Upsert(ctx context.Context, slot *model.ApprovedSlot) error {
	query := `
		INSERT INTO approved_slots (date, time_slot, batch, subject, professor_id, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date, time_slot) DO UPDATE
		SET batch = EXCLUDED.batch,
		    subject = EXCLUDED.subject,
		    professor_id = EXCLUDED.professor_id,
		    approved_at = EXCLUDED.approved_at
	`

	_, err := r.pool.Exec(
		ctx, query,
		slot.Date,
		slot.TimeSlot,
		slot.Batch,
		slot.Subject,
		slot.ProfessorID,
		slot.ApprovedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert approved slot: %w", err)
	}

	return nil
}

// GetByDate получает все одобренные слоты на дату, по возрастанию времени.
// Отсутствие слотов не ошибка - возвращается пустой срез.
func (r *ApprovedRepository) GetByDate(ctx context.Context, date string) ([]*model.ApprovedSlot, error) {
	query := `
		SELECT date, time_slot, batch, subject, professor_id, approved_at
		FROM approved_slots
		WHERE date = $1
		ORDER BY time_slot
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get approved slots by date: %w", err)
	}
	defer rows.Close()

	return collectApproved(rows)
}

// GetByProfessor получает одобренные слоты преподавателя по всем датам
func (r *ApprovedRepository) GetByProfessor(ctx context.Context, professorID int64) ([]*model.ApprovedSlot, error) {
	query := `
		SELECT date, time_slot, batch, subject, professor_id, approved_at
		FROM approved_slots
		WHERE professor_id = $1
		ORDER BY date, time_slot
	`

	rows, err := r.pool.Query(ctx, query, professorID)
	if err != nil {
		return nil, fmt.Errorf("get approved slots by professor: %w", err)
	}
	defer rows.Close()

	return collectApproved(rows)
}

func collectApproved(rows pgx.Rows) ([]*model.ApprovedSlot, error) {
	var slots []*model.ApprovedSlot
	for rows.Next() {
		var slot model.ApprovedSlot
		err := rows.Scan(
			&slot.Date,
			&slot.TimeSlot,
			&slot.Batch,
			&slot.Subject,
			&slot.ProfessorID,
			&slot.ApprovedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan approved slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate approved slots: %w", err)
	}

	return slots, nil
}
