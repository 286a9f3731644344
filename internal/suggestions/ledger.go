package suggestions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db"
	"github.com/loungecast/loungecast-backend/pkg/db/models"
)

// voteRecordsConstraint is the unique index enforcing one vote per (suggestion, user).
const voteRecordsConstraint = "vote_records_suggestion_user_key"

// Ledger records who voted for what. The unique constraint on
// (suggestion_id, user_id) is the authority on duplicates; callers must not
// try to pre-check instead.
type Ledger interface {
	WithTx(tx *gorm.DB) Ledger
	Record(ctx context.Context, record *models.VoteRecord) error
	HasVoted(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error)
	ListVotedSuggestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type duplicateVoteError struct {
	cause error
}

func (e *duplicateVoteError) Error() string { return "duplicate vote" }
func (e *duplicateVoteError) Unwrap() error { return e.cause }

// IsDuplicateVote reports whether the error came from the vote uniqueness constraint.
func IsDuplicateVote(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*duplicateVoteError)
	return ok
}

type ledger struct {
	db *gorm.DB
}

// NewLedger returns a vote ledger bound to the provided database.
func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) WithTx(tx *gorm.DB) Ledger {
	if tx == nil {
		return l
	}
	return &ledger{db: tx}
}

func (l *ledger) Record(ctx context.Context, record *models.VoteRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := l.db.WithContext(ctx).Create(record).Error; err != nil {
		if isVoteUniqueViolation(err) {
			return &duplicateVoteError{cause: err}
		}
		return err
	}
	return nil
}

func isVoteUniqueViolation(err error) bool {
	// SQLite reports the columns rather than the constraint name.
	return db.IsUniqueViolation(err, voteRecordsConstraint) || db.IsUniqueViolation(err, "")
}

func (l *ledger) HasVoted(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := l.db.WithContext(ctx).
		Model(&models.VoteRecord{}).
		Where("suggestion_id = ? AND user_id = ?", suggestionID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *ledger) ListVotedSuggestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := l.db.WithContext(ctx).
		Model(&models.VoteRecord{}).
		Where("user_id = ?", userID).
		Pluck("suggestion_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
