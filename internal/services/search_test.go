package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearch(t *testing.T, db *database.DB, userID uuid.UUID, query, status string, createdAt time.Time) *models.Search {
	t.Helper()

	search := models.Search{
		UserID:    userID,
		Query:     query,
		Status:    status,
		TimeRange: models.TimeRange7d,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&search).Error)

	return &search
}

func TestSearchCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "alice@example.com", 5)

	search, err := svc.Create(user.ID, &CreateSearchRequest{Query: "iphone 15", TimeRange: models.TimeRange7d})
	require.NoError(t, err)

	assert.Equal(t, models.SearchStatusPending, search.Status)
	assert.Equal(t, 0, search.TotalTweets)
	assert.Nil(t, search.SentimentSummary)
	assert.Nil(t, search.CompletedAt)
	assert.Equal(t, user.ID, search.UserID)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 4, fresh.CreditsRemaining, "one credit spent per search")
}

func TestSearchCreateQuotaExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "broke@example.com", 0)

	search, err := svc.Create(user.ID, &CreateSearchRequest{Query: "tesla", TimeRange: models.TimeRange24h})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Nil(t, search)

	// The rejected attempt must leave no trace
	var count int64
	require.NoError(t, db.Model(&models.Search{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 0, fresh.CreditsRemaining)
}

func TestSearchCreateSpendsDownToZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "lastcredit@example.com", 1)

	_, err := svc.Create(user.ID, &CreateSearchRequest{Query: "one", TimeRange: models.TimeRange7d})
	require.NoError(t, err)

	_, err = svc.Create(user.ID, &CreateSearchRequest{Query: "two", TimeRange: models.TimeRange7d})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestSearchListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "pager@example.com", 50)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedSearch(t, db, user.ID, fmt.Sprintf("query %02d", i), models.SearchStatusCompleted, base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := svc.List(user.ID, &SearchFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page1.Total)
	assert.Len(t, page1.Searches, 10)
	assert.Equal(t, "query 24", page1.Searches[0].Query, "newest first")

	page3, err := svc.List(user.ID, &SearchFilter{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page3.Total, "total covers the filtered set, not the page")
	assert.Len(t, page3.Searches, 5)
	assert.Equal(t, "query 00", page3.Searches[4].Query)

	// A page past the end is empty, not an error
	page4, err := svc.List(user.ID, &SearchFilter{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page4.Searches)
	assert.Equal(t, int64(25), page4.Total)
}

func TestSearchListQueryFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "filter@example.com", 50)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedSearch(t, db, user.ID, "iPhone 15 Pro", models.SearchStatusCompleted, base)
	seedSearch(t, db, user.ID, "Samsung Galaxy", models.SearchStatusCompleted, base.Add(time.Minute))
	seedSearch(t, db, user.ID, "iphone case reviews", models.SearchStatusPending, base.Add(2*time.Minute))

	resp, err := svc.List(user.ID, &SearchFilter{Page: 1, PageSize: 10, Query: "IPHONE"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Searches, 2)
	assert.Equal(t, "iphone case reviews", resp.Searches[0].Query)
	assert.Equal(t, "iPhone 15 Pro", resp.Searches[1].Query)
}

func TestSearchListStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "status@example.com", 50)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seedSearch(t, db, user.ID, "a", models.SearchStatusPending, base)
	seedSearch(t, db, user.ID, "b", models.SearchStatusCompleted, base.Add(time.Minute))
	seedSearch(t, db, user.ID, "c", models.SearchStatusCompleted, base.Add(2*time.Minute))

	resp, err := svc.List(user.ID, &SearchFilter{Page: 1, PageSize: 10, StatusFilter: models.SearchStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Searches, 2)
}

func TestSearchListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	alice := createTestUser(t, db, "alice2@example.com", 50)
	bob := createTestUser(t, db, "bob2@example.com", 50)

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	seedSearch(t, db, alice.ID, "alice query", models.SearchStatusPending, base)
	seedSearch(t, db, bob.ID, "bob query", models.SearchStatusPending, base)

	resp, err := svc.List(alice.ID, &SearchFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "alice query", resp.Searches[0].Query)
}

func TestSearchGetNotFoundIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	alice := createTestUser(t, db, "alice3@example.com", 50)
	bob := createTestUser(t, db, "bob3@example.com", 50)

	search := seedSearch(t, db, bob.ID, "bob only", models.SearchStatusPending, time.Now())

	// Someone else's search and a nonexistent one fail the same way
	_, err := svc.Get(alice.ID, search.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "cascade@example.com", 50)

	search := seedSearch(t, db, user.ID, "doomed", models.SearchStatusCompleted, time.Now())
	keep := seedSearch(t, db, user.ID, "survivor", models.SearchStatusCompleted, time.Now())

	tweet := models.Tweet{SearchID: search.ID, Text: "some tweet"}
	require.NoError(t, db.Create(&tweet).Error)
	require.NoError(t, db.Create(&models.Sentiment{TweetID: tweet.ID, ModelName: "roberta", SentimentLabel: "positive"}).Error)
	require.NoError(t, db.Create(&models.Report{SearchID: search.ID, UserID: user.ID, Format: models.ReportFormatPDF}).Error)

	keptTweet := models.Tweet{SearchID: keep.ID, Text: "unrelated tweet"}
	require.NoError(t, db.Create(&keptTweet).Error)

	require.NoError(t, svc.Delete(user.ID, search.ID))

	var count int64
	db.Model(&models.Search{}).Where("id = ?", search.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Tweet{}).Where("search_id = ?", search.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Sentiment{}).Where("tweet_id = ?", tweet.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Report{}).Where("search_id = ?", search.ID).Count(&count)
	assert.Zero(t, count)

	// The other search and its tweet are untouched
	db.Model(&models.Tweet{}).Where("search_id = ?", keep.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSearchDeleteNotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	alice := createTestUser(t, db, "alice4@example.com", 50)
	bob := createTestUser(t, db, "bob4@example.com", 50)

	search := seedSearch(t, db, bob.ID, "bob keeps this", models.SearchStatusPending, time.Now())

	assert.ErrorIs(t, svc.Delete(alice.ID, search.ID), ErrNotFound)

	var count int64
	db.Model(&models.Search{}).Where("id = ?", search.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSearchListTweets(t *testing.T) {
	db := newTestDB(t)
	svc := NewSearchService(db)
	user := createTestUser(t, db, "tweets@example.com", 50)

	search := seedSearch(t, db, user.ID, "with tweets", models.SearchStatusCompleted, time.Now())
	require.NoError(t, db.Create(&models.Tweet{SearchID: search.ID, Text: "first"}).Error)
	require.NoError(t, db.Create(&models.Tweet{SearchID: search.ID, Text: "second"}).Error)

	tweets, err := svc.ListTweets(user.ID, search.ID)
	require.NoError(t, err)
	assert.Len(t, tweets, 2)

	other := createTestUser(t, db, "other@example.com", 50)
	_, err = svc.ListTweets(other.ID, search.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
