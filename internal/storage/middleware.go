package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingMiddleware logs every storage operation with its duration.
type LoggingMiddleware struct {
	storage Storage
	logger  *logrus.Logger
}

// NewLoggingMiddleware wraps a storage with operation logging.
func NewLoggingMiddleware(storage Storage, logger *logrus.Logger) Storage {
	return &LoggingMiddleware{
		storage: storage,
		logger:  logger,
	}
}

func (m *LoggingMiddleware) log(op, key string) *logrus.Entry {
	return m.logger.WithFields(logrus.Fields{
		"operation": op,
		"key":       key,
	})
}

// Save logs the save operation.
func (m *LoggingMiddleware) Save(ctx context.Context, key string, reader io.Reader) error {
	start := time.Now()
	logger := m.log("save", key)

	err := m.storage.Save(ctx, key, reader)

	duration := time.Since(start)
	if err != nil {
		logger.WithError(err).WithField("duration", duration).Error("Failed to save file")
	} else {
		logger.WithField("duration", duration).Debug("File saved")
	}
	return err
}

// Get logs the get operation.
func (m *LoggingMiddleware) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	start := time.Now()
	logger := m.log("get", key)

	reader, err := m.storage.Get(ctx, key)

	duration := time.Since(start)
	if err != nil {
		logger.WithError(err).WithField("duration", duration).Error("Failed to get file")
	} else {
		logger.WithField("duration", duration).Debug("File retrieved")
	}
	return reader, err
}

// Delete logs the delete operation.
func (m *LoggingMiddleware) Delete(ctx context.Context, key string) error {
	logger := m.log("delete", key)

	err := m.storage.Delete(ctx, key)
	if err != nil {
		logger.WithError(err).Error("Failed to delete file")
	} else {
		logger.Debug("File deleted")
	}
	return err
}

// Exists logs the existence check.
func (m *LoggingMiddleware) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := m.storage.Exists(ctx, key)
	if err != nil {
		m.log("exists", key).WithError(err).Error("Failed to check file existence")
	}
	return exists, err
}

// GetSize logs the size lookup.
func (m *LoggingMiddleware) GetSize(ctx context.Context, key string) (int64, error) {
	size, err := m.storage.GetSize(ctx, key)
	if err != nil {
		m.log("size", key).WithError(err).Error("Failed to get file size")
	}
	return size, err
}

// JoinPath delegates to the wrapped storage.
func (m *LoggingMiddleware) JoinPath(elem ...string) string {
	return m.storage.JoinPath(elem...)
}

// ValidateKey delegates to the wrapped storage.
func (m *LoggingMiddleware) ValidateKey(key string) error {
	return m.storage.ValidateKey(key)
}

// RetryMiddleware retries transient storage failures with a fixed
// delay. Not-found errors and context cancellation are never retried.
type RetryMiddleware struct {
	storage    Storage
	maxRetries int
	delay      time.Duration
	logger     *logrus.Logger
}

// NewRetryMiddleware wraps a storage with retry logic.
func NewRetryMiddleware(storage Storage, maxRetries int, delay time.Duration, logger *logrus.Logger) Storage {
	return &RetryMiddleware{
		storage:    storage,
		maxRetries: maxRetries,
		delay:      delay,
		logger:     logger,
	}
}

func (m *RetryMiddleware) retry(ctx context.Context, op, key string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			m.logger.WithFields(logrus.Fields{
				"operation": op,
				"key":       key,
				"attempt":   attempt,
			}).Warn("Retrying storage operation")

			select {
			case <-time.After(m.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = fn()
		if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) {
			return err
		}
	}
	return err
}

// Save retries the save operation.
func (m *RetryMiddleware) Save(ctx context.Context, key string, reader io.Reader) error {
	// Readers are not rewindable in general; only the first attempt
	// sees the data, so Save is not retried.
	return m.storage.Save(ctx, key, reader)
}

// Get retries the get operation.
func (m *RetryMiddleware) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	var reader io.ReadCloser
	err := m.retry(ctx, "get", key, func() error {
		var err error
		reader, err = m.storage.Get(ctx, key)
		return err
	})
	return reader, err
}

// Delete retries the delete operation.
func (m *RetryMiddleware) Delete(ctx context.Context, key string) error {
	return m.retry(ctx, "delete", key, func() error {
		return m.storage.Delete(ctx, key)
	})
}

// Exists retries the existence check.
func (m *RetryMiddleware) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := m.retry(ctx, "exists", key, func() error {
		var err error
		exists, err = m.storage.Exists(ctx, key)
		return err
	})
	return exists, err
}

// GetSize retries the size lookup.
func (m *RetryMiddleware) GetSize(ctx context.Context, key string) (int64, error) {
	var size int64
	err := m.retry(ctx, "size", key, func() error {
		var err error
		size, err = m.storage.GetSize(ctx, key)
		return err
	})
	return size, err
}

// JoinPath delegates to the wrapped storage.
func (m *RetryMiddleware) JoinPath(elem ...string) string {
	return m.storage.JoinPath(elem...)
}

// ValidateKey delegates to the wrapped storage.
func (m *RetryMiddleware) ValidateKey(key string) error {
	return m.storage.ValidateKey(key)
}
