package repository

import (
	"context"
	"sync"
)

// MemoryBlobRepository хранит blob'ы в памяти процесса (данные теряются при рестарте)
type MemoryBlobRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobRepository() *MemoryBlobRepository {
	return &MemoryBlobRepository{blobs: make(map[string][]byte)}
}

// Get возвращает копию значения, nil если ключа нет
func (r *MemoryBlobRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Put сохраняет копию значения
func (r *MemoryBlobRepository) Put(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blobs[key] = append([]byte(nil), data...)
	return nil
}
