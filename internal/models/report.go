package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Report statuses. A record is written for every generation attempt,
// successful or not.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ReportRecord is the persisted outcome of one rendering attempt.
// The download endpoint resolves report IDs to file keys through
// these records.
type ReportRecord struct {
	ID         uint           `json:"-" gorm:"primarykey"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	ReportID   string         `json:"report_id" gorm:"size:36;not null;uniqueIndex"`
	TemplateID string         `json:"template_id" gorm:"size:255;not null"`
	Engine     string         `json:"engine" gorm:"size:50;not null"`
	Format     string         `json:"format" gorm:"size:20;not null"`
	Status     string         `json:"status" gorm:"size:20;not null"`
	FileKey    string         `json:"file_key,omitempty" gorm:"size:512"`
	SizeBytes  int64          `json:"size_bytes"`
	ElapsedSec float64        `json:"generation_time_seconds"`
	Error      string         `json:"error,omitempty" gorm:"size:2000"`
	Data       JSON           `json:"-" gorm:"type:jsonb"`
}

// JSON is a custom type for JSONB columns.
type JSON map[string]interface{}

// Value implements the driver.Valuer interface for JSON.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSON.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSON", value)
	}

	return json.Unmarshal(bytes, j)
}

// IsEmpty reports whether the map carries any values.
func (j JSON) IsEmpty() bool {
	return len(j) == 0
}

// TableName specifies the table name for the ReportRecord model.
func (ReportRecord) TableName() string {
	return "report_records"
}

// Succeeded returns true when the rendering attempt produced output.
func (r *ReportRecord) Succeeded() bool {
	return r.Status == StatusSuccess
}

// HasFile returns true when stored output bytes exist for the record.
func (r *ReportRecord) HasFile() bool {
	return r.FileKey != ""
}
