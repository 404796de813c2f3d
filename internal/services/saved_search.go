package services

import (
	"errors"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedSearchService struct {
	db *database.DB
}

func NewSavedSearchService(db *database.DB) *SavedSearchService {
	return &SavedSearchService{db: db}
}

type CreateSavedSearchRequest struct {
	Query          string   `json:"query"`
	AlertEnabled   bool     `json:"alert_enabled"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

// UpdateSavedSearchRequest carries a partial update. A nil field was absent
// from the request and stays untouched; there is no way to null a field out.
type UpdateSavedSearchRequest struct {
	AlertEnabled   *bool    `json:"alert_enabled,omitempty"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

// List retrieves all of the user's saved searches, newest first
func (s *SavedSearchService) List(userID uuid.UUID) ([]models.SavedSearch, error) {
	saved := []models.SavedSearch{}
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	return saved, err
}

// Create saves a query for monitoring. Duplicate matching is an exact byte
// comparison; the check runs in the same transaction as the insert, and the
// unique index on (user_id, query) backs it under concurrent saves.
func (s *SavedSearchService) Create(userID uuid.UUID, req *CreateSavedSearchRequest) (*models.SavedSearch, error) {
	saved := models.SavedSearch{
		UserID:         userID,
		Query:          req.Query,
		AlertEnabled:   req.AlertEnabled,
		AlertThreshold: req.AlertThreshold,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SavedSearch{}).
			Where("user_id = ? AND query = ?", userID, req.Query).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateSavedSearch
		}

		return tx.Create(&saved).Error
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// Update applies the fields present in the request to an owned saved search
func (s *SavedSearchService) Update(userID, savedSearchID uuid.UUID, req *UpdateSavedSearchRequest) (*models.SavedSearch, error) {
	var saved models.SavedSearch
	err := s.db.Where("id = ? AND user_id = ?", savedSearchID, userID).First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.AlertEnabled != nil {
		saved.AlertEnabled = *req.AlertEnabled
	}
	if req.AlertThreshold != nil {
		saved.AlertThreshold = req.AlertThreshold
	}

	if err := s.db.Save(&saved).Error; err != nil {
		return nil, err
	}

	return &saved, nil
}

// Delete removes an owned saved search
func (s *SavedSearchService) Delete(userID, savedSearchID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", savedSearchID, userID).Delete(&models.SavedSearch{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
