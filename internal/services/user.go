package services

import (
	"errors"
	"time"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// UserResponse is the externally visible shape of a user row. Credential
// hashes and OAuth ids never leave the service layer.
type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	Username         *string    `json:"username,omitempty"`
	FullName         *string    `json:"full_name,omitempty"`
	AvatarURL        *string    `json:"avatar_url,omitempty"`
	Tier             string     `json:"tier"`
	CreditsRemaining int        `json:"credits_remaining"`
	EmailVerified    bool       `json:"email_verified"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

type CreditsResponse struct {
	CreditsRemaining int        `json:"credits_remaining"`
	CreditsResetDate *time.Time `json:"credits_reset_date,omitempty"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		AvatarURL:        user.AvatarURL,
		Tier:             user.Tier,
		CreditsRemaining: user.CreditsRemaining,
		EmailVerified:    user.EmailVerified,
		IsActive:         user.IsActive,
		CreatedAt:        user.CreatedAt,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the fields present in the request to the user's profile
func (s *UserService) Update(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", *req.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
		user.EmailVerified = false
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Credits returns the user's remaining quota and its reset date
func (s *UserService) Credits(id uuid.UUID) (*CreditsResponse, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	return &CreditsResponse{
		CreditsRemaining: user.CreditsRemaining,
		CreditsResetDate: user.CreditsResetDate,
	}, nil
}

// Delete removes a user and every record they own: searches with their
// tweets, sentiments and reports, then saved searches, then the user row.
func (s *UserService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var searchIDs []uuid.UUID
		if err := tx.Model(&models.Search{}).Where("user_id = ?", id).Pluck("id", &searchIDs).Error; err != nil {
			return err
		}
		for _, searchID := range searchIDs {
			if err := deleteSearchRows(tx, searchID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.SavedSearch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
