package advertisements

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
)

// Repository handles advertisement persistence.
type Repository interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error)
	ListActiveAt(ctx context.Context, at time.Time) ([]models.Advertisement, error)
	List(ctx context.Context) ([]models.Advertisement, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an advertisement repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ad *models.Advertisement) error {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ad).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// ListActiveAt returns running campaigns, highest priority first. Open-ended
// campaigns have a null end_date.
func (r *repository) ListActiveAt(ctx context.Context, at time.Time) ([]models.Advertisement, error) {
	var ads []models.Advertisement
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND (end_date IS NULL OR end_date > ?)", true, at, at).
		Order("priority DESC, created_at DESC").
		Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *repository) List(ctx context.Context) ([]models.Advertisement, error) {
	var ads []models.Advertisement
	if err := r.db.WithContext(ctx).
		Order("priority DESC, created_at DESC").
		Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Advertisement{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Advertisement{}).
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
		Delete(&models.Advertisement{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
