package suggestions

import (
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/enums"
)

// SubmitInput captures a guest's proposed content title.
type SubmitInput struct {
	Title      string
	Type       enums.MediaType
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// VoteInput identifies who is endorsing which suggestion.
type VoteInput struct {
	SuggestionID uuid.UUID
	UserID       uuid.UUID
}

// ResolveInput carries an admin decision on a pending suggestion.
type ResolveInput struct {
	SuggestionID uuid.UUID
	Decision     enums.SuggestionStatus
	ActorUserID  uuid.UUID
}

// ListQuery filters suggestion listings.
type ListQuery struct {
	Status       *enums.SuggestionStatus
	UserID       *uuid.UUID
	CreatedSince *time.Time
	// OrderByVotes switches from newest-first to the board ordering:
	// votes descending, ties in submission order.
	OrderByVotes bool
}

// QuotaStatus reports how much of today's suggestion allowance a user has left.
type QuotaStatus struct {
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetsAt  time.Time `json:"resets_at"`
}
