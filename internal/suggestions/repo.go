package suggestions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
)

// Repository handles vote suggestion persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, suggestion *models.VoteSuggestion) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.VoteSuggestion, error)
	List(ctx context.Context, query ListQuery) ([]models.VoteSuggestion, error)
	ListTopVoted(ctx context.Context, limit int) ([]models.VoteSuggestion, error)
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	IncrementPendingVotes(ctx context.Context, id uuid.UUID) (bool, error)
	ResolvePending(ctx context.Context, id uuid.UUID, status enums.SuggestionStatus, resolvedAt time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a suggestion repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, suggestion *models.VoteSuggestion) error {
	if suggestion.ID == uuid.Nil {
		suggestion.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VoteSuggestion, error) {
	var suggestion models.VoteSuggestion
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&suggestion).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &suggestion, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.VoteSuggestion, error) {
	q := r.db.WithContext(ctx).Model(&models.VoteSuggestion{})
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}
	if query.CreatedSince != nil {
		q = q.Where("created_at >= ?", *query.CreatedSince)
	}

	order := "created_at DESC"
	if query.OrderByVotes {
		order = "votes DESC, created_at ASC"
	}

	var suggestions []models.VoteSuggestion
	if err := q.Order(order).Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *repository) ListTopVoted(ctx context.Context, limit int) ([]models.VoteSuggestion, error) {
	if limit <= 0 {
		limit = 5
	}
	var suggestions []models.VoteSuggestion
	if err := r.db.WithContext(ctx).
		Where("status = ?", enums.SuggestionStatusPending).
		Order("votes DESC, created_at ASC").
		Limit(limit).
		Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *repository) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VoteSuggestion{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementPendingVotes bumps the vote counter with a single guarded UPDATE.
// The pending predicate makes the increment lose cleanly against a concurrent
// resolution; false means the suggestion was missing or no longer pending.
func (r *repository) IncrementPendingVotes(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.VoteSuggestion{}).
		Where("id = ? AND status = ?", id, enums.SuggestionStatusPending).
		Update("votes", gorm.Expr("votes + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResolvePending performs the compare-and-set transition out of pending.
// false means another resolution won the race or the row does not exist.
func (r *repository) ResolvePending(ctx context.Context, id uuid.UUID, status enums.SuggestionStatus, resolvedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.VoteSuggestion{}).
		Where("id = ? AND status = ?", id, enums.SuggestionStatusPending).
		Updates(map[string]any{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
