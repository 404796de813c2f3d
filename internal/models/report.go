package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report export formats.
const (
	ReportFormatPDF  = "pdf"
	ReportFormatCSV  = "csv"
	ReportFormatJSON = "json"
)

// Report is a generated export of a search's results. The file itself is
// produced by the report generator; this row is the request and its metadata.
// DB: reports
type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SearchID   uuid.UUID  `gorm:"column:search_id;type:uuid;not null;index:idx_reports_search" json:"search_id"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_reports_user" json:"user_id"`
	Format     string     `gorm:"column:format;size:10;not null" json:"format"`
	FileURL    *string    `gorm:"column:file_url;type:text" json:"file_url,omitempty"`
	FileSizeKB *int       `gorm:"column:file_size_kb" json:"file_size_kb,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt  *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
