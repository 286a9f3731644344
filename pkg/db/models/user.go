package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/enums"
)

// User represents a portal account (lounge guest or administrator).
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string         `gorm:"column:username;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	DisplayName  string         `gorm:"column:display_name;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:guest"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}
