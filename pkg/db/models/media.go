package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/enums"
)

// Media is a catalog entry, either a movie or a series.
type Media struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string          `gorm:"column:title;type:text;not null"`
	Description  string          `gorm:"column:description;type:text;not null"`
	Type         enums.MediaType `gorm:"column:type;type:text;not null;index:media_type_idx"`
	CategoryID   uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index:media_category_id_idx"`
	ThumbnailURL string          `gorm:"column:thumbnail_url;type:text;not null"`
	FilePath     string          `gorm:"column:file_path;type:text;not null"`
	Year         int             `gorm:"column:year;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// SeriesSeason belongs to a series Media row.
type SeriesSeason struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MediaID      uuid.UUID `gorm:"column:media_id;type:uuid;not null;index:series_seasons_media_id_idx"`
	SeasonNumber int       `gorm:"column:season_number;not null"`
	Title        string    `gorm:"column:title;type:text;not null"`
}

// SeriesEpisode belongs to a SeriesSeason.
type SeriesEpisode struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SeasonID      uuid.UUID `gorm:"column:season_id;type:uuid;not null;index:series_episodes_season_id_idx"`
	EpisodeNumber int       `gorm:"column:episode_number;not null"`
	Title         string    `gorm:"column:title;type:text;not null"`
	FilePath      string    `gorm:"column:file_path;type:text;not null"`
}
