package models

import (
	"time"

	"github.com/google/uuid"
)

// Advertisement is a lounge offer or promo banner.
type Advertisement struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;type:text;not null"`
	Description *string    `gorm:"column:description;type:text"`
	ImageURL    string     `gorm:"column:image_url;type:text;not null"`
	LinkURL     *string    `gorm:"column:link_url;type:text"`
	StartDate   time.Time  `gorm:"column:start_date;not null"`
	EndDate     *time.Time `gorm:"column:end_date"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	Priority    int        `gorm:"column:priority;not null;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
