package suggestions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// nowUTC is swapped out in tests.
var nowUTC = func() time.Time { return time.Now().UTC() }

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// categorySource looks up the category a suggestion targets.
type categorySource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Service orchestrates the suggestion lifecycle: submission under quota,
// one-per-user voting, and admin resolution.
type Service struct {
	repo       Repository
	ledger     Ledger
	quota      *QuotaTracker
	tx         txRunner
	categories categorySource
}

// ServiceParams groups dependencies for the suggestion service.
type ServiceParams struct {
	Repo       Repository
	Ledger     Ledger
	Quota      *QuotaTracker
	Tx         txRunner
	Categories categorySource
}

// NewService builds a suggestion service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("suggestions repository required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("vote ledger required")
	}
	if params.Quota == nil {
		return nil, fmt.Errorf("quota tracker required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("category source required")
	}
	return &Service{
		repo:       params.Repo,
		ledger:     params.Ledger,
		quota:      params.Quota,
		tx:         params.Tx,
		categories: params.Categories,
	}, nil
}

// Submit creates a pending suggestion, charging one unit of the user's daily quota.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*models.VoteSuggestion, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	if !category.Kind.Accepts(input.Type) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not accept this media type")
	}

	if err := s.quota.Check(ctx, input.UserID); err != nil {
		return nil, err
	}

	suggestion := &models.VoteSuggestion{
		Title:      title,
		Type:       input.Type,
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
		Status:     enums.SuggestionStatusPending,
	}
	if err := s.repo.Create(ctx, suggestion); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create suggestion")
	}
	return suggestion, nil
}

// Vote records a user's endorsement and bumps the counter atomically. The
// ledger insert and the counter increment share one transaction, so the count
// can never drift from the ledger.
func (s *Service) Vote(ctx context.Context, input VoteInput) (*models.VoteSuggestion, error) {
	if input.SuggestionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "suggestion id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var voted *models.VoteSuggestion
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		suggestion, err := repo.FindByID(ctx, input.SuggestionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestion")
		}
		if suggestion == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "suggestion not found")
		}
		if suggestion.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "suggestion already resolved")
		}

		if err := ledger.Record(ctx, &models.VoteRecord{
			SuggestionID: input.SuggestionID,
			UserID:       input.UserID,
		}); err != nil {
			if IsDuplicateVote(err) {
				return pkgerrors.New(pkgerrors.CodeForbidden, "already voted for this suggestion")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record vote")
		}

		ok, err := repo.IncrementPendingVotes(ctx, input.SuggestionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment votes")
		}
		if !ok {
			// Lost a race against resolution; roll back the ledger insert too.
			return pkgerrors.New(pkgerrors.CodeStateConflict, "suggestion already resolved")
		}

		suggestion.Votes++
		voted = suggestion
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voted, nil
}

// Resolve transitions a pending suggestion to its terminal state. The guarded
// UPDATE makes concurrent resolutions settle on exactly one winner.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (*models.VoteSuggestion, error) {
	if input.SuggestionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "suggestion id required")
	}
	if !input.Decision.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be approved or rejected")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	now := nowUTC()
	ok, err := s.repo.ResolvePending(ctx, input.SuggestionID, input.Decision, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve suggestion")
	}
	if !ok {
		suggestion, err := s.repo.FindByID(ctx, input.SuggestionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestion")
		}
		if suggestion == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "suggestion not found")
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "suggestion already resolved")
	}

	suggestion, err := s.repo.FindByID(ctx, input.SuggestionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestion")
	}
	if suggestion == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "suggestion not found")
	}
	return suggestion, nil
}

// List returns suggestions matching the query, newest first.
func (s *Service) List(ctx context.Context, query ListQuery) ([]models.VoteSuggestion, error) {
	if query.Status != nil && !query.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	items, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suggestions")
	}
	return items, nil
}

// PendingToday serves the public voting board: suggestions submitted since
// local midnight that are still pending, most voted first with ties in
// submission order. Yesterday's unresolved suggestions drop off at rollover.
func (s *Service) PendingToday(ctx context.Context) ([]models.VoteSuggestion, error) {
	pending := enums.SuggestionStatusPending
	since := startOfDay(time.Now())
	return s.List(ctx, ListQuery{Status: &pending, CreatedSince: &since, OrderByVotes: true})
}

// TopVoted returns the leading pending suggestions for the portal home screen.
func (s *Service) TopVoted(ctx context.Context, limit int) ([]models.VoteSuggestion, error) {
	items, err := s.repo.ListTopVoted(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list top voted")
	}
	return items, nil
}

// Quota reports the caller's remaining daily allowance.
func (s *Service) Quota(ctx context.Context, userID uuid.UUID) (*QuotaStatus, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.quota.Status(ctx, userID)
}

// VotedSuggestionIDs lists the suggestions the user has already endorsed, so
// the portal can grey out their vote buttons.
func (s *Service) VotedSuggestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	ids, err := s.ledger.ListVotedSuggestionIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list voted suggestions")
	}
	return ids, nil
}
