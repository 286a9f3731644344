package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
)

// Repository handles portal settings persistence.
type Repository interface {
	Find(ctx context.Context) (*models.PortalSetting, error)
	Seed(ctx context.Context, setting *models.PortalSetting) error
	Update(ctx context.Context, setting *models.PortalSetting) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context) (*models.PortalSetting, error) {
	var setting models.PortalSetting
	if err := r.db.WithContext(ctx).
		Where("id = ?", models.PortalSettingsID).
		First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Seed inserts the singleton row if it does not exist yet. Safe to run on
// every boot.
func (r *repository) Seed(ctx context.Context, setting *models.PortalSetting) error {
	setting.ID = models.PortalSettingsID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(setting).Error
}

func (r *repository) Update(ctx context.Context, setting *models.PortalSetting) error {
	setting.ID = models.PortalSettingsID
	return r.db.WithContext(ctx).Save(setting).Error
}
