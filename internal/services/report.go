package services

import (
	"errors"
	"time"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generated report files are kept around for a week before the cleanup
// job may reclaim them.
const reportRetention = 7 * 24 * time.Hour

type ReportService struct {
	db *database.DB
}

func NewReportService(db *database.DB) *ReportService {
	return &ReportService{db: db}
}

type GenerateReportRequest struct {
	SearchID uuid.UUID `json:"search_id"`
	Format   string    `json:"format"`
}

// Generate records a report request for an owned search. The file reference
// and size are filled in by the generator once the export is produced.
func (s *ReportService) Generate(userID uuid.UUID, req *GenerateReportRequest) (*models.Report, error) {
	var search models.Search
	err := s.db.Where("id = ? AND user_id = ?", req.SearchID, userID).First(&search).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(reportRetention)
	report := models.Report{
		SearchID:  search.ID,
		UserID:    userID,
		Format:    req.Format,
		ExpiresAt: &expiresAt,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	// TODO: enqueue the export job for the report generator
	return &report, nil
}

// List retrieves the user's reports, newest first
func (s *ReportService) List(userID uuid.UUID) ([]models.Report, error) {
	reports := []models.Report{}
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

// Get retrieves a report scoped to its owner
func (s *ReportService) Get(userID, reportID uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := s.db.Where("id = ? AND user_id = ?", reportID, userID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
