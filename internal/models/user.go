package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account tiers. The tier governs the credit allotment a user starts with;
// credits themselves are tracked on the row.
const (
	TierFree  = "free"
	TierPro   = "pro"
	TierAdmin = "admin"
)

// User represents the users table
// DB: users
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string     `gorm:"column:email;size:255;not null;uniqueIndex:users_email_key" json:"email"`
	Username         *string    `gorm:"column:username;size:50;uniqueIndex:users_username_key" json:"username,omitempty"`
	PasswordHash     *string    `gorm:"column:password_hash;size:255" json:"-"`
	FullName         *string    `gorm:"column:full_name;size:100" json:"full_name,omitempty"`
	AvatarURL        *string    `gorm:"column:avatar_url;type:text" json:"avatar_url,omitempty"`
	Tier             string     `gorm:"column:tier;size:20;not null;default:'free'" json:"tier"`
	CreditsRemaining int        `gorm:"column:credits_remaining;not null;default:50" json:"credits_remaining"`
	CreditsResetDate *time.Time `gorm:"column:credits_reset_date" json:"credits_reset_date,omitempty"`
	OAuthProvider    *string    `gorm:"column:oauth_provider;size:50" json:"oauth_provider,omitempty"`
	OAuthID          *string    `gorm:"column:oauth_id;size:255" json:"-"`
	EmailVerified    bool       `gorm:"column:email_verified;not null;default:false" json:"email_verified"`
	IsActive         bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
