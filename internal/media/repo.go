package media

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	"github.com/loungecast/loungecast-backend/pkg/pagination"
)

// ListMediaQuery configures catalog list queries.
type ListMediaQuery struct {
	Type       *enums.MediaType
	CategoryID *uuid.UUID
	Search     string
	Limit      int
	Cursor     *pagination.Cursor
}

// Repository handles catalog persistence.
type Repository interface {
	Create(ctx context.Context, item *models.Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	List(ctx context.Context, query ListMediaQuery) ([]models.Media, *pagination.Cursor, error)
	ListLatest(ctx context.Context, limit int) ([]models.Media, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	CreateSeason(ctx context.Context, season *models.SeriesSeason) error
	ListSeasons(ctx context.Context, mediaID uuid.UUID) ([]models.SeriesSeason, error)
	FindSeason(ctx context.Context, id uuid.UUID) (*models.SeriesSeason, error)
	CreateEpisode(ctx context.Context, episode *models.SeriesEpisode) error
	ListEpisodes(ctx context.Context, seasonID uuid.UUID) ([]models.SeriesEpisode, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a media repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *models.Media) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var item models.Media
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, query ListMediaQuery) ([]models.Media, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(query.Limit)
	q := r.db.WithContext(ctx).Model(&models.Media{})
	if query.Type != nil {
		q = q.Where("type = ?", *query.Type)
	}
	if query.CategoryID != nil {
		q = q.Where("category_id = ?", *query.CategoryID)
	}
	if query.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query.Search)+"%")
	}
	if query.Cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", query.Cursor.CreatedAt, query.Cursor.ID)
	}

	var items []models.Media
	if err := q.Order("created_at DESC, id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&items).Error; err != nil {
		return nil, nil, err
	}

	if len(items) > limit {
		next := items[limit]
		items = items[:limit]
		return items, &pagination.Cursor{
			CreatedAt: next.CreatedAt,
			ID:        next.ID,
		}, nil
	}

	return items, nil, nil
}

func (r *repository) ListLatest(ctx context.Context, limit int) ([]models.Media, error) {
	if limit <= 0 {
		limit = 6
	}
	var items []models.Media
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Media{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CreateSeason(ctx context.Context, season *models.SeriesSeason) error {
	if season.ID == uuid.Nil {
		season.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(season).Error
}

func (r *repository) ListSeasons(ctx context.Context, mediaID uuid.UUID) ([]models.SeriesSeason, error) {
	var seasons []models.SeriesSeason
	if err := r.db.WithContext(ctx).
		Where("media_id = ?", mediaID).
		Order("season_number ASC").
		Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

func (r *repository) FindSeason(ctx context.Context, id uuid.UUID) (*models.SeriesSeason, error) {
	var season models.SeriesSeason
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&season).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &season, nil
}

func (r *repository) CreateEpisode(ctx context.Context, episode *models.SeriesEpisode) error {
	if episode.ID == uuid.Nil {
		episode.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(episode).Error
}

func (r *repository) ListEpisodes(ctx context.Context, seasonID uuid.UUID) ([]models.SeriesEpisode, error) {
	var episodes []models.SeriesEpisode
	if err := r.db.WithContext(ctx).
		Where("season_id = ?", seasonID).
		Order("episode_number ASC").
		Find(&episodes).Error; err != nil {
		return nil, err
	}
	return episodes, nil
}
