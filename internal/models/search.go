package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Search statuses. A search is created as pending; the analysis worker
// advances it from there, so any of the four values can show up on a read.
const (
	SearchStatusPending    = "pending"
	SearchStatusProcessing = "processing"
	SearchStatusCompleted  = "completed"
	SearchStatusFailed     = "failed"
)

// Time-range windows the worker searches over.
const (
	TimeRange24h = "24h"
	TimeRange7d  = "7d"
	TimeRange30d = "30d"
)

// Search represents one sentiment-analysis request
// DB: searches
type Search struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index:idx_searches_user" json:"user_id"`
	Query            string         `gorm:"column:query;type:text;not null" json:"query"`
	Status           string         `gorm:"column:status;size:20;not null;default:'pending';index:idx_searches_status" json:"status"`
	TotalTweets      int            `gorm:"column:total_tweets;not null;default:0" json:"total_tweets"`
	SentimentSummary datatypes.JSON `gorm:"column:sentiment_summary" json:"sentiment_summary,omitempty"`
	EmotionSummary   datatypes.JSON `gorm:"column:emotion_summary" json:"emotion_summary,omitempty"`
	Entities         datatypes.JSON `gorm:"column:entities" json:"entities,omitempty"`
	TimeRange        string         `gorm:"column:time_range;size:10;not null;default:'7d'" json:"time_range"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime;index:idx_searches_created,sort:desc" json:"created_at"`
	CompletedAt      *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Search) TableName() string {
	return "searches"
}

func (s *Search) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Tweet is one ingested post belonging to a search. Rows are written by the
// analysis worker and never mutated afterwards.
// DB: tweets
type Tweet struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SearchID         uuid.UUID      `gorm:"column:search_id;type:uuid;not null;index:idx_tweets_search" json:"search_id"`
	TweetID          *string        `gorm:"column:tweet_id;size:50;uniqueIndex:tweets_tweet_id_key" json:"tweet_id,omitempty"`
	Text             string         `gorm:"column:text;type:text;not null" json:"text"`
	AuthorUsername   *string        `gorm:"column:author_username;size:100" json:"author_username,omitempty"`
	AuthorName       *string        `gorm:"column:author_name;size:100" json:"author_name,omitempty"`
	CreatedAtTwitter *time.Time     `gorm:"column:created_at_twitter" json:"created_at_twitter,omitempty"`
	RetweetCount     int            `gorm:"column:retweet_count;not null;default:0" json:"retweet_count"`
	LikeCount        int            `gorm:"column:like_count;not null;default:0" json:"like_count"`
	ReplyCount       int            `gorm:"column:reply_count;not null;default:0" json:"reply_count"`
	IsVerified       bool           `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	Location         *string        `gorm:"column:location;size:255" json:"location,omitempty"`
	RawData          datatypes.JSON `gorm:"column:raw_data" json:"-"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (t *Tweet) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Sentiment is one model's scoring of a tweet, write-once by the worker.
// DB: sentiments
type Sentiment struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TweetID         uuid.UUID      `gorm:"column:tweet_id;type:uuid;not null;index:idx_sentiments_tweet" json:"tweet_id"`
	ModelName       string         `gorm:"column:model_name;size:50;not null" json:"model_name"`
	SentimentLabel  string         `gorm:"column:sentiment_label;size:20;not null" json:"sentiment_label"`
	ConfidenceScore *float64       `gorm:"column:confidence_score" json:"confidence_score,omitempty"`
	IsSarcastic     bool           `gorm:"column:is_sarcastic;not null;default:false" json:"is_sarcastic"`
	SarcasmScore    *float64       `gorm:"column:sarcasm_score" json:"sarcasm_score,omitempty"`
	Emotions        datatypes.JSON `gorm:"column:emotions" json:"emotions,omitempty"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Sentiment) TableName() string {
	return "sentiments"
}

func (s *Sentiment) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
