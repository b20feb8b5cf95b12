package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/heymumford/Rinna/internal/models"
)

// RecordStore persists the outcome of rendering attempts. The
// download endpoint resolves report IDs through it.
type RecordStore interface {
	Create(ctx context.Context, record *models.ReportRecord) error
	GetByReportID(ctx context.Context, reportID string) (*models.ReportRecord, error)
}

// ErrRecordNotFound is returned for unknown report IDs.
var ErrRecordNotFound = errors.New("report record not found")

// GormRecordStore is the gorm-backed record store.
type GormRecordStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewGormRecordStore creates a record store over an open database.
func NewGormRecordStore(db *gorm.DB, logger *logrus.Logger) *GormRecordStore {
	return &GormRecordStore{db: db, logger: logger}
}

// Create inserts a new record.
func (s *GormRecordStore) Create(ctx context.Context, record *models.ReportRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to store report record: %w", err)
	}
	return nil
}

// GetByReportID looks up a record by its generated report ID.
func (s *GormRecordStore) GetByReportID(ctx context.Context, reportID string) (*models.ReportRecord, error) {
	var record models.ReportRecord
	err := s.db.WithContext(ctx).Where("report_id = ?", reportID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to load report record: %w", err)
	}
	return &record, nil
}
