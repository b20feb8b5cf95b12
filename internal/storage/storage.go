// Package storage stores generated report files. Two backends exist:
// the local filesystem for single-machine setups and S3 when report
// output is shared with the rest of the Rinna deployment.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/heymumford/Rinna/internal/config"
)

const (
	TypeLocal = "local"
	TypeS3    = "s3"

	defaultMaxRetries = 3
	defaultRetryDelay = time.Second

	maxKeyLength = 1024
)

// ErrNotFound is returned when no object exists for a key.
var ErrNotFound = errors.New("object not found")

// Storage is the interface report output is written through.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetSize(ctx context.Context, key string) (int64, error)

	JoinPath(elem ...string) string
	ValidateKey(key string) error
}

// New builds the storage backend selected by the configuration and
// wraps it with logging and retry middleware.
func New(cfg config.Config, logger *logrus.Logger) (Storage, error) {
	var (
		backend Storage
		err     error
	)

	switch cfg.Storage.Type {
	case TypeS3:
		backend, err = NewS3Storage(cfg.Storage.S3, logger)
	case TypeLocal:
		backend, err = NewLocalStorage(cfg.Storage.BasePath, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", cfg.Storage.Type, err)
	}

	backend = NewRetryMiddleware(backend, defaultMaxRetries, defaultRetryDelay, logger)
	backend = NewLoggingMiddleware(backend, logger)
	return backend, nil
}

// validateKey applies the key rules shared by every backend.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("storage key too long: %d characters (max %d)", len(key), maxKeyLength)
	}
	return nil
}
