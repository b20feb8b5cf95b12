package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage keeps report files under a base directory on the
// local filesystem.
type LocalStorage struct {
	basePath string
	logger   *logrus.Logger
}

// NewLocalStorage creates a local storage rooted at basePath,
// creating the directory if it does not exist.
func NewLocalStorage(basePath string, logger *logrus.Logger) (*LocalStorage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		logger:   logger,
	}, nil
}

// Save writes the reader's contents to the file for key.
func (l *LocalStorage) Save(ctx context.Context, key string, reader io.Reader) error {
	fullPath, err := l.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Get opens the file for key.
func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := l.fullPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the file for key. Deleting a missing file is not an
// error.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := l.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a file exists for key.
func (l *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := l.fullPath(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

// GetSize returns the size in bytes of the file for key.
func (l *LocalStorage) GetSize(ctx context.Context, key string) (int64, error) {
	fullPath, err := l.fullPath(key)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size(), nil
}

// JoinPath joins key elements with forward slashes.
func (l *LocalStorage) JoinPath(elem ...string) string {
	return path.Join(elem...)
}

// ValidateKey validates a storage key, rejecting path traversal.
func (l *LocalStorage) ValidateKey(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if strings.Contains(key, "..") {
		return fmt.Errorf("storage key must not contain '..': %s", key)
	}
	return nil
}

// fullPath resolves a key to an absolute path under the base
// directory after validation.
func (l *LocalStorage) fullPath(key string) (string, error) {
	if err := l.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(l.basePath, filepath.FromSlash(key)), nil
}
