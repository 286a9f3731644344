package suggestions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// limitSource yields the current daily suggestion allowance. The portal
// settings row owns the value, so admin changes apply to the very next check
// without a restart.
type limitSource interface {
	MaxDailySuggestions(ctx context.Context) (int, error)
}

type suggestionCounter interface {
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
}

// QuotaTracker enforces the per-user daily submission allowance. Days roll
// over at server-local midnight.
type QuotaTracker struct {
	limits  limitSource
	counter suggestionCounter
	now     func() time.Time
}

// NewQuotaTracker builds a quota tracker.
func NewQuotaTracker(limits limitSource, counter suggestionCounter) (*QuotaTracker, error) {
	if limits == nil {
		return nil, fmt.Errorf("limit source required")
	}
	if counter == nil {
		return nil, fmt.Errorf("suggestion counter required")
	}
	return &QuotaTracker{
		limits:  limits,
		counter: counter,
		now:     time.Now,
	}, nil
}

// Status reports the user's remaining allowance for the current day.
func (t *QuotaTracker) Status(ctx context.Context, userID uuid.UUID) (*QuotaStatus, error) {
	limit, err := t.limits.MaxDailySuggestions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestion limit")
	}

	start := startOfDay(t.now())
	used, err := t.counter.CountCreatedSince(ctx, userID, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count today's suggestions")
	}

	remaining := limit - int(used)
	if remaining < 0 {
		remaining = 0
	}
	return &QuotaStatus{
		Limit:     limit,
		Used:      int(used),
		Remaining: remaining,
		ResetsAt:  start.AddDate(0, 0, 1),
	}, nil
}

// Check returns an error when the user has exhausted today's allowance.
func (t *QuotaTracker) Check(ctx context.Context, userID uuid.UUID) error {
	status, err := t.Status(ctx, userID)
	if err != nil {
		return err
	}
	if status.Remaining <= 0 {
		return pkgerrors.New(pkgerrors.CodeForbidden, "daily suggestion limit reached")
	}
	return nil
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
