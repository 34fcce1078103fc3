package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/config"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Storage выбранный бэкенд хранения и функция освобождения ресурсов
type Storage struct {
	Blob    service.BlobStorage
	Backend string
	closers []func()
}

// Close освобождает соединения в обратном порядке
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStorage подключает бэкенд из конфига; для postgres применяет миграции
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	st := &Storage{Backend: cfg.StorageBackend}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, lectures will be lost on restart")
		st.Blob = repository.NewMemoryBlobRepository()

	case config.StorageFile:
		repo, err := repository.NewFileBlobRepository(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using file storage", zap.String("path", repo.Path(cfg.StorageKey)))
		st.Blob = repo

	case config.StoragePostgres:
		pool, err := openPostgres(ctx, cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)
		st.Blob = repository.NewPostgresBlobRepository(pool)

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})

		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}

		logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))
		st.closers = append(st.closers, func() {
			if err := client.Close(); err != nil {
				logger.Error("Failed to close redis client", zap.Error(err))
			}
		})
		st.Blob = repository.NewRedisBlobRepository(client)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return st, nil
}

func openPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(connCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("✅ Connected to PostgreSQL")

	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
