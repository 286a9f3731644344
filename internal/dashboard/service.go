package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalMovies         int64 `json:"total_movies"`
	TotalSeries         int64 `json:"total_series"`
	PendingSuggestions  int64 `json:"pending_suggestions"`
	ApprovedSuggestions int64 `json:"approved_suggestions"`
	VotesToday          int64 `json:"votes_today"`
	ActiveStreams       int64 `json:"active_streams"`
	ActiveAds           int64 `json:"active_ads"`
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	DB *gorm.DB
}

// Service aggregates counts across the portal for the admin home screen.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService builds a dashboard service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database required")
	}
	return &Service{db: params.DB, now: time.Now}, nil
}

// Stats runs the dashboard count queries. Individual failures are combined so
// one broken table does not hide the others from the error report.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats Stats
	var errs error

	count := func(dest *int64, label string, query *gorm.DB) {
		if err := query.Count(dest).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", label, err))
		}
	}

	count(&stats.TotalUsers, "users",
		s.db.WithContext(ctx).Model(&models.User{}))
	count(&stats.TotalMovies, "movies",
		s.db.WithContext(ctx).Model(&models.Media{}).Where("type = ?", enums.MediaTypeMovie))
	count(&stats.TotalSeries, "series",
		s.db.WithContext(ctx).Model(&models.Media{}).Where("type = ?", enums.MediaTypeSeries))
	count(&stats.PendingSuggestions, "pending suggestions",
		s.db.WithContext(ctx).Model(&models.VoteSuggestion{}).Where("status = ?", enums.SuggestionStatusPending))
	count(&stats.ApprovedSuggestions, "approved suggestions",
		s.db.WithContext(ctx).Model(&models.VoteSuggestion{}).Where("status = ?", enums.SuggestionStatusApproved))
	count(&stats.VotesToday, "votes today",
		s.db.WithContext(ctx).Model(&models.VoteRecord{}).Where("created_at >= ?", startOfDay))
	count(&stats.ActiveStreams, "active streams",
		s.db.WithContext(ctx).Model(&models.LiveStream{}).Where("is_active = ? AND end_time > ?", true, now))
	count(&stats.ActiveAds, "active ads",
		s.db.WithContext(ctx).Model(&models.Advertisement{}).Where("is_active = ? AND start_date <= ? AND (end_date IS NULL OR end_date > ?)", true, now, now))

	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dashboard counts")
	}
	return &stats, nil
}
