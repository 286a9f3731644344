package advertisements

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// CreateInput captures a new promo campaign.
type CreateInput struct {
	Title       string
	Description *string
	ImageURL    string
	LinkURL     *string
	StartDate   time.Time
	EndDate     *time.Time
	IsActive    bool
	Priority    int
}

// UpdateInput carries partial edits to a campaign. Nil fields keep their
// current value.
type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	LinkURL     *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
	Priority    *int
}

// ServiceParams groups dependencies for the advertisement service.
type ServiceParams struct {
	Repo Repository
}

// Service manages lounge promo banners.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds an advertisement service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("advertisement repository required")
	}
	return &Service{repo: params.Repo, now: time.Now}, nil
}

// Create adds a campaign.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Advertisement, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url required")
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}

	ad := &models.Advertisement{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		LinkURL:     input.LinkURL,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsActive:    input.IsActive,
		Priority:    input.Priority,
	}
	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create advertisement")
	}
	return ad, nil
}

// Active returns campaigns running right now, for the portal banner strip.
func (s *Service) Active(ctx context.Context) ([]models.Advertisement, error) {
	ads, err := s.repo.ListActiveAt(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active advertisements")
	}
	return ads, nil
}

// List returns all campaigns. Admin surface only.
func (s *Service) List(ctx context.Context) ([]models.Advertisement, error) {
	ads, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list advertisements")
	}
	return ads, nil
}

// Update edits a campaign. The schedule is validated against the merged
// window so a partial edit cannot close a campaign before it opens.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Advertisement, error) {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load advertisement")
	}
	if ad == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "advertisement not found")
	}

	start := ad.StartDate
	end := ad.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = input.EndDate
	}
	if end != nil && !end.After(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
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
		fields["description"] = *input.Description
	}
	if input.ImageURL != nil {
		if strings.TrimSpace(*input.ImageURL) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url required")
		}
		fields["image_url"] = *input.ImageURL
	}
	if input.LinkURL != nil {
		fields["link_url"] = *input.LinkURL
	}
	if input.StartDate != nil {
		fields["start_date"] = start
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.Priority != nil {
		fields["priority"] = *input.Priority
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	ok, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update advertisement")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "advertisement not found")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load advertisement")
	}
	return updated, nil
}

// SetActive toggles a campaign.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	ok, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle advertisement")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "advertisement not found")
	}
	return nil
}

// Delete removes a campaign.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete advertisement")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "advertisement not found")
	}
	return nil
}
