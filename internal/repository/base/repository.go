package base

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultQueryTimeout ограничение на один запрос, если вызывающий не задал дедлайн
const DefaultQueryTimeout = 5 * time.Second

// Repository базовый репозиторий: пул и таймаут на запрос
type Repository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRepository создаёт новый базовый репозиторий; timeout <= 0 означает DefaultQueryTimeout
func NewRepository(pool *pgxpool.Pool, timeout time.Duration) *Repository {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Repository{pool: pool, timeout: timeout}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// ScanOne выполняет запрос и сканирует одну строку в dest
func (r *Repository) ScanOne(ctx context.Context, query string, args []interface{}, dest ...interface{}) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.pool.QueryRow(ctx, query, args...).Scan(dest...)
}

// ExecAffected выполняет команду и возвращает количество затронутых строк
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...interface{}) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// IsNotFound проверяет является ли ошибка "строка не найдена"
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
