package services

import (
	"errors"
	"time"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IngestService applies analysis results posted back by the worker. It is
// the only writer of Tweet and Sentiment rows and of Search status fields.
type IngestService struct {
	db *database.DB
}

func NewIngestService(db *database.DB) *IngestService {
	return &IngestService{db: db}
}

type SentimentResult struct {
	ModelName       string         `json:"model_name"`
	SentimentLabel  string         `json:"sentiment_label"`
	ConfidenceScore *float64       `json:"confidence_score,omitempty"`
	IsSarcastic     bool           `json:"is_sarcastic"`
	SarcasmScore    *float64       `json:"sarcasm_score,omitempty"`
	Emotions        datatypes.JSON `json:"emotions,omitempty"`
}

type TweetResult struct {
	TweetID          *string           `json:"tweet_id,omitempty"`
	Text             string            `json:"text"`
	AuthorUsername   *string           `json:"author_username,omitempty"`
	AuthorName       *string           `json:"author_name,omitempty"`
	CreatedAtTwitter *time.Time        `json:"created_at_twitter,omitempty"`
	RetweetCount     int               `json:"retweet_count"`
	LikeCount        int               `json:"like_count"`
	ReplyCount       int               `json:"reply_count"`
	IsVerified       bool              `json:"is_verified"`
	Location         *string           `json:"location,omitempty"`
	RawData          datatypes.JSON    `json:"raw_data,omitempty"`
	Sentiments       []SentimentResult `json:"sentiments,omitempty"`
}

type SearchResultsRequest struct {
	SearchID         uuid.UUID      `json:"search_id"`
	Status           string         `json:"status"`
	SentimentSummary datatypes.JSON `json:"sentiment_summary,omitempty"`
	EmotionSummary   datatypes.JSON `json:"emotion_summary,omitempty"`
	Entities         datatypes.JSON `json:"entities,omitempty"`
	Tweets           []TweetResult  `json:"tweets,omitempty"`
}

// ApplySearchResults writes a result batch for a search: child tweet and
// sentiment rows, the summary blobs, the status, and the tweet counter.
// CompletedAt is stamped on the terminal statuses.
func (s *IngestService) ApplySearchResults(req *SearchResultsRequest) (*models.Search, error) {
	var search models.Search

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&search, "id = ?", req.SearchID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		for _, tw := range req.Tweets {
			tweet := models.Tweet{
				SearchID:         search.ID,
				TweetID:          tw.TweetID,
				Text:             tw.Text,
				AuthorUsername:   tw.AuthorUsername,
				AuthorName:       tw.AuthorName,
				CreatedAtTwitter: tw.CreatedAtTwitter,
				RetweetCount:     tw.RetweetCount,
				LikeCount:        tw.LikeCount,
				ReplyCount:       tw.ReplyCount,
				IsVerified:       tw.IsVerified,
				Location:         tw.Location,
				RawData:          tw.RawData,
			}
			if err := tx.Create(&tweet).Error; err != nil {
				return err
			}

			for _, sr := range tw.Sentiments {
				sentiment := models.Sentiment{
					TweetID:         tweet.ID,
					ModelName:       sr.ModelName,
					SentimentLabel:  sr.SentimentLabel,
					ConfidenceScore: sr.ConfidenceScore,
					IsSarcastic:     sr.IsSarcastic,
					SarcasmScore:    sr.SarcasmScore,
					Emotions:        sr.Emotions,
				}
				if err := tx.Create(&sentiment).Error; err != nil {
					return err
				}
			}
		}

		var totalTweets int64
		if err := tx.Model(&models.Tweet{}).Where("search_id = ?", search.ID).Count(&totalTweets).Error; err != nil {
			return err
		}

		search.Status = req.Status
		search.TotalTweets = int(totalTweets)
		if req.SentimentSummary != nil {
			search.SentimentSummary = req.SentimentSummary
		}
		if req.EmotionSummary != nil {
			search.EmotionSummary = req.EmotionSummary
		}
		if req.Entities != nil {
			search.Entities = req.Entities
		}
		if req.Status == models.SearchStatusCompleted || req.Status == models.SearchStatusFailed {
			now := time.Now()
			search.CompletedAt = &now
		}

		return tx.Save(&search).Error
	})
	if err != nil {
		return nil, err
	}

	return &search, nil
}
