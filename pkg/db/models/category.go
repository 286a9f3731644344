package models

import (
	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/enums"
)

// Category groups catalog media and scopes guest suggestions.
type Category struct {
	ID   uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string             `gorm:"column:name;type:text;not null"`
	Kind enums.CategoryKind `gorm:"column:kind;type:text;not null"`
}
