package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/heymumford/Rinna/internal/config"
	"github.com/heymumford/Rinna/internal/models"
)

// New opens a database connection for the configured driver. The
// sqlite driver is the development default; postgres is used when the
// tools share a database with the Java backend.
func New(cfg config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Server.Debug {
		logLevel = logger.Info
	} else {
		logLevel = logger.Error
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DB.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DB.DSN), gormConfig)
	case "sqlite":
		if dir := filepath.Dir(cfg.DB.DSN); dir != "." && dir != "" && cfg.DB.DSN != ":memory:" {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.DB.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// AutoMigrate runs database migrations for the tooling models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ReportRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
