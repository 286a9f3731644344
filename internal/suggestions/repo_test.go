package suggestions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
)

func setupSuggestionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	suggestions := `
CREATE TABLE IF NOT EXISTS vote_suggestions (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  category_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  votes INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  resolved_at DATETIME
);`
	records := `
CREATE TABLE IF NOT EXISTS vote_records (
  id TEXT PRIMARY KEY,
  suggestion_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (suggestion_id, user_id)
);`
	require.NoError(t, db.Exec(suggestions).Error)
	require.NoError(t, db.Exec(records).Error)
	return db
}

func seedSuggestion(t *testing.T, db *gorm.DB, status enums.SuggestionStatus) *models.VoteSuggestion {
	t.Helper()
	suggestion := &models.VoteSuggestion{
		ID:         uuid.New(),
		Title:      "The Night Manager",
		Type:       enums.MediaTypeSeries,
		CategoryID: uuid.New(),
		UserID:     uuid.New(),
		Status:     status,
	}
	require.NoError(t, db.Create(suggestion).Error)
	return suggestion
}

func TestRepositoryCreateAssignsID(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)

	suggestion := &models.VoteSuggestion{
		Title:      "Heat",
		Type:       enums.MediaTypeMovie,
		CategoryID: uuid.New(),
		UserID:     uuid.New(),
		Status:     enums.SuggestionStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), suggestion))
	assert.NotEqual(t, uuid.Nil, suggestion.ID)

	found, err := repo.FindByID(context.Background(), suggestion.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Heat", found.Title)
	assert.Equal(t, enums.SuggestionStatusPending, found.Status)
}

func TestRepositoryFindByIDMissingReturnsNil(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)

	found, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestIncrementPendingVotesGuardsStatus(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pending := seedSuggestion(t, db, enums.SuggestionStatusPending)
	resolved := seedSuggestion(t, db, enums.SuggestionStatusApproved)

	ok, err := repo.IncrementPendingVotes(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IncrementPendingVotes(ctx, resolved.ID)
	require.NoError(t, err)
	assert.False(t, ok, "resolved suggestion must not accept votes")

	ok, err = repo.IncrementPendingVotes(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok, "missing suggestion must not accept votes")

	found, err := repo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Votes)
}

func TestResolvePendingIsCompareAndSet(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	suggestion := seedSuggestion(t, db, enums.SuggestionStatusPending)
	now := time.Now().UTC()

	ok, err := repo.ResolvePending(ctx, suggestion.ID, enums.SuggestionStatusApproved, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second resolution loses the compare-and-set.
	ok, err = repo.ResolvePending(ctx, suggestion.ID, enums.SuggestionStatusRejected, now)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByID(ctx, suggestion.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SuggestionStatusApproved, found.Status)
	require.NotNil(t, found.ResolvedAt)
}

func TestCountCreatedSince(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	now := time.Now()
	rows := []models.VoteSuggestion{
		{ID: uuid.New(), Title: "a", Type: enums.MediaTypeMovie, CategoryID: uuid.New(), UserID: userID, Status: enums.SuggestionStatusPending, CreatedAt: now},
		{ID: uuid.New(), Title: "b", Type: enums.MediaTypeMovie, CategoryID: uuid.New(), UserID: userID, Status: enums.SuggestionStatusPending, CreatedAt: now.Add(-30 * time.Hour)},
		{ID: uuid.New(), Title: "c", Type: enums.MediaTypeMovie, CategoryID: uuid.New(), UserID: uuid.New(), Status: enums.SuggestionStatusPending, CreatedAt: now},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	count, err := repo.CountCreatedSince(ctx, userID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListWithCreatedSinceDropsYesterday(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	today := seedSuggestion(t, db, enums.SuggestionStatusPending)
	yesterday := seedSuggestion(t, db, enums.SuggestionStatusPending)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).
		Where("id = ?", yesterday.ID).
		Update("created_at", time.Now().AddDate(0, 0, -1)).Error)

	pending := enums.SuggestionStatusPending
	since := startOfDay(time.Now())
	items, err := repo.List(ctx, ListQuery{Status: &pending, CreatedSince: &since, OrderByVotes: true})
	require.NoError(t, err)
	require.Len(t, items, 1, "yesterday's suggestion must drop off the board")
	assert.Equal(t, today.ID, items[0].ID)
}

func TestListBoardOrderBreaksTiesBySubmission(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now()
	first := seedSuggestion(t, db, enums.SuggestionStatusPending)
	second := seedSuggestion(t, db, enums.SuggestionStatusPending)
	leader := seedSuggestion(t, db, enums.SuggestionStatusPending)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", first.ID).
		Updates(map[string]any{"votes": 2, "created_at": now.Add(-2 * time.Hour)}).Error)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", second.ID).
		Updates(map[string]any{"votes": 2, "created_at": now.Add(-1 * time.Hour)}).Error)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", leader.ID).
		Updates(map[string]any{"votes": 5, "created_at": now}).Error)

	items, err := repo.List(ctx, ListQuery{OrderByVotes: true})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, leader.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID, "equal votes keep submission order")
	assert.Equal(t, second.ID, items[2].ID)
}

func TestListDefaultsToNewestFirst(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now()
	older := seedSuggestion(t, db, enums.SuggestionStatusPending)
	newer := seedSuggestion(t, db, enums.SuggestionStatusPending)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", older.ID).
		Updates(map[string]any{"votes": 10, "created_at": now.Add(-3 * time.Hour)}).Error)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", newer.ID).
		Updates(map[string]any{"votes": 0, "created_at": now}).Error)

	items, err := repo.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID, "admin listing leads with the newest row")
	assert.Equal(t, older.ID, items[1].ID)
}

func TestListTopVotedOrdersByVotes(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	low := seedSuggestion(t, db, enums.SuggestionStatusPending)
	high := seedSuggestion(t, db, enums.SuggestionStatusPending)
	resolved := seedSuggestion(t, db, enums.SuggestionStatusApproved)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", high.ID).Update("votes", 7).Error)
	require.NoError(t, db.Model(&models.VoteSuggestion{}).Where("id = ?", resolved.ID).Update("votes", 99).Error)

	top, err := repo.ListTopVoted(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2, "resolved suggestions must not appear")
	assert.Equal(t, high.ID, top[0].ID)
	assert.Equal(t, low.ID, top[1].ID)
}

func TestLedgerRejectsDuplicateVote(t *testing.T) {
	db := setupSuggestionsTestDB(t)
	ledger := NewLedger(db)
	ctx := context.Background()

	suggestionID := uuid.New()
	userID := uuid.New()

	require.NoError(t, ledger.Record(ctx, &models.VoteRecord{SuggestionID: suggestionID, UserID: userID}))

	err := ledger.Record(ctx, &models.VoteRecord{SuggestionID: suggestionID, UserID: userID})
	require.Error(t, err)
	assert.True(t, IsDuplicateVote(err))

	// Same user on another suggestion is fine.
	require.NoError(t, ledger.Record(ctx, &models.VoteRecord{SuggestionID: uuid.New(), UserID: userID}))

	voted, err := ledger.HasVoted(ctx, suggestionID, userID)
	require.NoError(t, err)
	assert.True(t, voted)

	ids, err := ledger.ListVotedSuggestionIDs(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}
