package services

import (
	"errors"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchService struct {
	db *database.DB
}

func NewSearchService(db *database.DB) *SearchService {
	return &SearchService{db: db}
}

type CreateSearchRequest struct {
	Query     string `json:"query"`
	TimeRange string `json:"time_range"`
}

type SearchFilter struct {
	Page         int
	PageSize     int
	Query        string // case-insensitive substring match
	StatusFilter string
}

type SearchListResponse struct {
	Searches []models.Search `json:"searches"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Create spends one credit and records the search as pending. The conditional
// decrement and the insert run in one transaction so two concurrent creates
// cannot drive credits below zero or spend a credit without a search row.
func (s *SearchService) Create(userID uuid.UUID, req *CreateSearchRequest) (*models.Search, error) {
	search := models.Search{
		UserID:    userID,
		Query:     req.Query,
		Status:    models.SearchStatusPending,
		TimeRange: req.TimeRange,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND credits_remaining > 0", userID).
			UpdateColumn("credits_remaining", gorm.Expr("credits_remaining - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrQuotaExceeded
		}

		return tx.Create(&search).Error
	})
	if err != nil {
		return nil, err
	}

	// TODO: enqueue an analysis job for the worker once the task queue lands
	return &search, nil
}

// List retrieves a page of the user's searches, newest first. Total is
// counted over the filtered set independent of the page window.
func (s *SearchService) List(userID uuid.UUID, filter *SearchFilter) (*SearchListResponse, error) {
	searches := []models.Search{}
	var total int64

	query := s.db.Model(&models.Search{}).Where("user_id = ?", userID)

	if filter.Query != "" {
		query = query.Where("LOWER(query) LIKE LOWER(?)", "%"+filter.Query+"%")
	}
	if filter.StatusFilter != "" {
		query = query.Where("status = ?", filter.StatusFilter)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.PageSize).Find(&searches).Error; err != nil {
		return nil, err
	}

	return &SearchListResponse{
		Searches: searches,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get retrieves a search scoped to its owner
func (s *SearchService) Get(userID, searchID uuid.UUID) (*models.Search, error) {
	var search models.Search
	err := s.db.Where("id = ? AND user_id = ?", searchID, userID).First(&search).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &search, nil
}

// Delete removes a search and everything hanging off it
func (s *SearchService) Delete(userID, searchID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var search models.Search
		err := tx.Where("id = ? AND user_id = ?", searchID, userID).First(&search).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return deleteSearchRows(tx, searchID)
	})
}

// ListTweets returns the ingested tweets of an owned search, newest first
func (s *SearchService) ListTweets(userID, searchID uuid.UUID) ([]models.Tweet, error) {
	if _, err := s.Get(userID, searchID); err != nil {
		return nil, err
	}

	tweets := []models.Tweet{}
	err := s.db.Where("search_id = ?", searchID).Order("created_at DESC").Find(&tweets).Error
	return tweets, err
}

// deleteSearchRows removes one search with its tweets, sentiments and
// reports, children first. No FK cascades are assumed at the storage layer.
func deleteSearchRows(tx *gorm.DB, searchID uuid.UUID) error {
	var tweetIDs []uuid.UUID
	if err := tx.Model(&models.Tweet{}).Where("search_id = ?", searchID).Pluck("id", &tweetIDs).Error; err != nil {
		return err
	}

	if len(tweetIDs) > 0 {
		if err := tx.Where("tweet_id IN ?", tweetIDs).Delete(&models.Sentiment{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("search_id = ?", searchID).Delete(&models.Tweet{}).Error; err != nil {
		return err
	}
	if err := tx.Where("search_id = ?", searchID).Delete(&models.Report{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Search{}, "id = ?", searchID).Error
}
