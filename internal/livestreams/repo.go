package livestreams

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
)

// Repository handles live stream persistence.
type Repository interface {
	Create(ctx context.Context, stream *models.LiveStream) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.LiveStream, error)
	ListActiveAt(ctx context.Context, at time.Time) ([]models.LiveStream, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]models.LiveStream, error)
	List(ctx context.Context) ([]models.LiveStream, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a live stream repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, stream *models.LiveStream) error {
	if stream.ID == uuid.Nil {
		stream.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(stream).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LiveStream, error) {
	var stream models.LiveStream
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&stream).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &stream, nil
}

func (r *repository) ListActiveAt(ctx context.Context, at time.Time) ([]models.LiveStream, error) {
	var streams []models.LiveStream
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_time <= ? AND end_time > ?", true, at, at).
		Order("start_time ASC").
		Find(&streams).Error; err != nil {
		return nil, err
	}
	return streams, nil
}

func (r *repository) ListUpcoming(ctx context.Context, after time.Time) ([]models.LiveStream, error) {
	var streams []models.LiveStream
	if err := r.db.WithContext(ctx).
		Where("start_time > ?", after).
		Order("start_time ASC").
		Find(&streams).Error; err != nil {
		return nil, err
	}
	return streams, nil
}

func (r *repository) List(ctx context.Context) ([]models.LiveStream, error) {
	var streams []models.LiveStream
	if err := r.db.WithContext(ctx).
		Order("start_time DESC").
		Find(&streams).Error; err != nil {
		return nil, err
	}
	return streams, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LiveStream{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LiveStream{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.LiveStream{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
