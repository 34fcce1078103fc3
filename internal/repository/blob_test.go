package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// checkBlobStore общий сценарий для всех реализаций
func checkBlobStore(t *testing.T, store blobStore, key string) {
	t.Helper()
	ctx := context.Background()

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, data, "missing key must read as nil")

	require.NoError(t, store.Put(ctx, key, []byte(`[{"id":1}]`)))
	data, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))

	require.NoError(t, store.Put(ctx, key, []byte(`[]`)))
	data, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMemoryBlobRepository(t *testing.T) {
	checkBlobStore(t, NewMemoryBlobRepository(), "lectures")
}

func TestMemoryBlobRepository_CopiesData(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlobRepository()

	buf := []byte("abc")
	require.NoError(t, repo.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileBlobRepository(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileBlobRepository(filepath.Join(dir, "data"), zap.NewNop())
	require.NoError(t, err)

	checkBlobStore(t, repo, "lectures")

	backup, err := os.ReadFile(repo.Path("lectures") + blobBackupSuffix)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(backup))

	_, err = os.Stat(filepath.Join(dir, "data", "lectures"+blobTmpSuffix))
	assert.True(t, os.IsNotExist(err), "tmp file must be renamed away")
}

func TestFileBlobRepository_SanitizesKey(t *testing.T) {
	repo, err := NewFileBlobRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	path := repo.Path("lectures:../owner")
	assert.Equal(t, "lectures_.._owner.json", filepath.Base(path))
}

func TestPostgresBlobRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	require.NoError(t, err)

	key := "test_lectures_" + time.Now().Format("150405.000000")
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM kv_store WHERE key = $1`, key)
	})

	checkBlobStore(t, NewPostgresBlobRepository(pool), key)
}

func TestRedisBlobRepository(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	key := "test_lectures_" + time.Now().Format("150405.000000")
	t.Cleanup(func() {
		client.Del(context.Background(), key)
	})

	checkBlobStore(t, NewRedisBlobRepository(client), key)
}
