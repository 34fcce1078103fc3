package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	blobFileSuffix    = ".json"
	blobTmpSuffix     = ".tmp.json"
	blobBackupSuffix  = ".backup"
	blobFilePerm      = 0644
	blobDirPermission = 0755
)

// FileBlobRepository хранит каждый ключ в отдельном JSON файле в каталоге
type FileBlobRepository struct {
	dir    string
	logger *zap.Logger
}

func NewFileBlobRepository(dir string, logger *zap.Logger) (*FileBlobRepository, error) {
	if err := os.MkdirAll(dir, blobDirPermission); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBlobRepository{dir: dir, logger: logger}, nil
}

// Path путь к файлу ключа
func (r *FileBlobRepository) Path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(r.dir, safe+blobFileSuffix)
}

// Get читает файл ключа, nil если файла нет
func (r *FileBlobRepository) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return data, nil
}

// Put пишет во временный файл и атомарно переименовывает его,
// предыдущая версия остаётся рядом с суффиксом .backup
func (r *FileBlobRepository) Put(_ context.Context, key string, data []byte) error {
	path := r.Path(key)

	if _, err := os.Stat(path); err == nil {
		if err := copyFile(path, path+blobBackupSuffix); err != nil {
			r.logger.Warn("Failed to create backup", zap.String("path", path), zap.Error(err))
		}
	}

	tmp := strings.TrimSuffix(path, blobFileSuffix) + blobTmpSuffix
	if err := os.WriteFile(tmp, data, blobFilePerm); err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit blob %q: %w", key, err)
	}

	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, blobFilePerm)
}
