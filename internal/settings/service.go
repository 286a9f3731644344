package settings

import (
	"context"
	"fmt"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo Repository

	// DefaultMaxDailySuggestions seeds the settings row on first boot.
	DefaultMaxDailySuggestions int
}

// Service owns the portal settings singleton.
type Service struct {
	repo       Repository
	defaultMax int
}

// NewService builds a settings service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if params.DefaultMaxDailySuggestions <= 0 {
		return nil, fmt.Errorf("default max daily suggestions must be positive")
	}
	return &Service{
		repo:       params.Repo,
		defaultMax: params.DefaultMaxDailySuggestions,
	}, nil
}

// EnsureSeeded creates the settings row when missing. Called once on startup.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	if err := s.repo.Seed(ctx, &models.PortalSetting{
		MaxDailySuggestions: s.defaultMax,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed portal settings")
	}
	return nil
}

// Get returns the current settings row.
func (s *Service) Get(ctx context.Context) (*models.PortalSetting, error) {
	setting, err := s.repo.Find(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load portal settings")
	}
	if setting == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "portal settings not seeded")
	}
	return setting, nil
}

// UpdateMaxDailySuggestions changes the quota with immediate effect.
func (s *Service) UpdateMaxDailySuggestions(ctx context.Context, max int) (*models.PortalSetting, error) {
	if max <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max daily suggestions must be positive")
	}
	setting, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	setting.MaxDailySuggestions = max
	if err := s.repo.Update(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update portal settings")
	}
	return setting, nil
}

// MaxDailySuggestions satisfies the quota tracker's limit source.
func (s *Service) MaxDailySuggestions(ctx context.Context) (int, error) {
	setting, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return setting.MaxDailySuggestions, nil
}
