package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DateLocker сериализует конкурирующие заявки на одну дату через
// advisory-лок Postgres. Лок живёт до конца транзакции, поэтому две
// одновременные проверки конфликтов на одну дату выполняются строго
// по очереди и вторая видит запись, вставленную первой.
type DateLocker struct {
	pool *pgxpool.Pool
}

func NewDateLocker(pool *pgxpool.Pool) *DateLocker {
	return &DateLocker{pool: pool}
}

// WithDateLock выполняет fn под эксклюзивным локом на дату
func (l *DateLocker) WithDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lock transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, date)
	if err != nil {
		return fmt.Errorf("acquire date lock: %w", err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lock transaction: %w", err)
	}

	return nil
}
