package models

import (
	"time"

	"github.com/google/uuid"
)

// LiveStream is a scheduled broadcast shown on the guest portal.
type LiveStream struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Category    string    `gorm:"column:category;type:text;not null"`
	StreamURL   string    `gorm:"column:stream_url;type:text;not null"`
	StartTime   time.Time `gorm:"column:start_time;not null"`
	EndTime     time.Time `gorm:"column:end_time;not null"`
	IsActive    bool      `gorm:"column:is_active;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
