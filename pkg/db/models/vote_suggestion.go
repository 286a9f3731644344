package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/enums"
)

// VoteSuggestion is a guest-proposed piece of content awaiting admin review.
// Votes is maintained exclusively through atomic SQL increments; it must always
// equal the number of VoteRecord rows referencing the suggestion.
type VoteSuggestion struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title      string                 `gorm:"column:title;type:text;not null"`
	Type       enums.MediaType        `gorm:"column:type;type:text;not null"`
	CategoryID uuid.UUID              `gorm:"column:category_id;type:uuid;not null"`
	UserID     uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index:vote_suggestions_user_id_idx"`
	Votes      int                    `gorm:"column:votes;not null;default:0"`
	Status     enums.SuggestionStatus `gorm:"column:status;type:text;not null;default:pending;index:vote_suggestions_status_idx"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime;index:vote_suggestions_created_at_idx"`
	ResolvedAt *time.Time             `gorm:"column:resolved_at"`
}

// VoteRecord is a single user's one-time endorsement of a suggestion. The
// unique index on (suggestion_id, user_id) is the source of truth for vote
// uniqueness.
type VoteRecord struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SuggestionID uuid.UUID `gorm:"column:suggestion_id;type:uuid;not null;index:vote_records_suggestion_id_idx;uniqueIndex:vote_records_suggestion_user_key"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:vote_records_suggestion_user_key"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
