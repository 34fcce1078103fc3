package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBlobRepository хранит blob'ы в таблице kv_store
type PostgresBlobRepository struct {
	*base.Repository
}

func NewPostgresBlobRepository(pool *pgxpool.Pool) *PostgresBlobRepository {
	return &PostgresBlobRepository{Repository: base.NewRepository(pool, base.DefaultQueryTimeout)}
}

// Get получает значение по ключу, nil если ключа нет
func (r *PostgresBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`

	var value string
	err := r.ScanOne(ctx, query, []interface{}{key}, &value)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}

	return []byte(value), nil
}

// Put перезаписывает значение целиком
func (r *PostgresBlobRepository) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	affected, err := r.ExecAffected(ctx, query, key, string(data))
	if err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}

	if affected == 0 {
		return fmt.Errorf("put blob %q: no rows written", key)
	}

	return nil
}
