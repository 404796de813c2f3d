package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedSearch is a query a user wants monitored on a recurring basis.
// The composite unique index backs the application-level duplicate check,
// so two concurrent saves of the same query cannot both land.
// DB: saved_searches
type SavedSearch struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_saved_user_query" json:"user_id"`
	Query          string     `gorm:"column:query;size:500;not null;uniqueIndex:idx_saved_user_query" json:"query"`
	AlertEnabled   bool       `gorm:"column:alert_enabled;not null;default:false" json:"alert_enabled"`
	AlertThreshold *float64   `gorm:"column:alert_threshold" json:"alert_threshold,omitempty"`
	LastChecked    *time.Time `gorm:"column:last_checked" json:"last_checked,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SavedSearch) TableName() string {
	return "saved_searches"
}

func (s *SavedSearch) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
