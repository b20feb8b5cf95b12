package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heymumford/Rinna/internal/models"
)

func TestRecordStoreRoundTrip(t *testing.T) {
	store := NewGormRecordStore(setupTestDB(t), setupTestLogger())

	record := &models.ReportRecord{
		ReportID:   "11111111-2222-3333-4444-555555555555",
		TemplateID: "status_summary",
		Engine:     "html",
		Format:     "html",
		Status:     models.StatusSuccess,
		FileKey:    "reports/1111/report.html",
		SizeBytes:  42,
	}

	err := store.Create(context.Background(), record)
	assert.NoError(t, err)
	assert.NotZero(t, record.ID)

	loaded, err := store.GetByReportID(context.Background(), record.ReportID)
	assert.NoError(t, err)
	assert.Equal(t, record.TemplateID, loaded.TemplateID)
	assert.Equal(t, record.FileKey, loaded.FileKey)
	assert.True(t, loaded.Succeeded())
	assert.True(t, loaded.HasFile())
}

func TestRecordStoreUnknownID(t *testing.T) {
	store := NewGormRecordStore(setupTestDB(t), setupTestLogger())

	_, err := store.GetByReportID(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
