package livestreams

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// CreateInput captures a new scheduled broadcast.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	StreamURL   string
	StartTime   time.Time
	EndTime     time.Time
	IsActive    bool
}

// UpdateInput carries partial edits to a scheduled broadcast. Nil fields keep
// their current value.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	StreamURL   *string
	StartTime   *time.Time
	EndTime     *time.Time
	IsActive    *bool
}

// StreamView decorates a stream with portal display fields.
type StreamView struct {
	models.LiveStream
	IsLive           bool `json:"is_live"`
	MinutesRemaining int  `json:"minutes_remaining"`
}

// ServiceParams groups dependencies for the live stream service.
type ServiceParams struct {
	Repo Repository
}

// Service manages scheduled lounge broadcasts.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a live stream service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("live stream repository required")
	}
	return &Service{repo: params.Repo, now: time.Now}, nil
}

// Create schedules a broadcast.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.LiveStream, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(input.StreamURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stream url required")
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end time must be after start time")
	}

	stream := &models.LiveStream{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		StreamURL:   input.StreamURL,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsActive:    input.IsActive,
	}
	if err := s.repo.Create(ctx, stream); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create live stream")
	}
	return stream, nil
}

// Live returns the streams currently on air.
func (s *Service) Live(ctx context.Context) ([]StreamView, error) {
	now := s.now()
	streams, err := s.repo.ListActiveAt(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list live streams")
	}
	views := make([]StreamView, 0, len(streams))
	for _, stream := range streams {
		views = append(views, s.decorate(stream, now))
	}
	return views, nil
}

// Upcoming returns streams that have not started yet.
func (s *Service) Upcoming(ctx context.Context) ([]StreamView, error) {
	now := s.now()
	streams, err := s.repo.ListUpcoming(ctx, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list upcoming streams")
	}
	views := make([]StreamView, 0, len(streams))
	for _, stream := range streams {
		views = append(views, s.decorate(stream, now))
	}
	return views, nil
}

// List returns every scheduled stream. Admin surface only.
func (s *Service) List(ctx context.Context) ([]models.LiveStream, error) {
	streams, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list streams")
	}
	return streams, nil
}

// Update edits a scheduled broadcast. The window is validated against the
// merged schedule so a partial edit cannot leave end before start.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.LiveStream, error) {
	stream, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stream")
	}
	if stream == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "live stream not found")
	}

	start := stream.StartTime
	end := stream.EndTime
	if input.StartTime != nil {
		start = *input.StartTime
	}
	if input.EndTime != nil {
		end = *input.EndTime
	}
	if !end.After(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end time must be after start time")
	}

	fields := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
		}
		fields["title"] = title
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		fields["category"] = strings.TrimSpace(*input.Category)
	}
	if input.StreamURL != nil {
		if strings.TrimSpace(*input.StreamURL) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stream url required")
		}
		fields["stream_url"] = *input.StreamURL
	}
	if input.StartTime != nil {
		fields["start_time"] = start
	}
	if input.EndTime != nil {
		fields["end_time"] = end
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	ok, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stream")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "live stream not found")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stream")
	}
	return updated, nil
}

// SetActive toggles whether a stream is shown on the portal.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	ok, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle stream")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "live stream not found")
	}
	return nil
}

// Delete removes a scheduled stream.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete stream")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "live stream not found")
	}
	return nil
}

func (s *Service) decorate(stream models.LiveStream, now time.Time) StreamView {
	view := StreamView{LiveStream: stream}
	view.IsLive = stream.IsActive && !now.Before(stream.StartTime) && now.Before(stream.EndTime)
	if view.IsLive {
		view.MinutesRemaining = int(math.Ceil(stream.EndTime.Sub(now).Minutes()))
	}
	return view
}
