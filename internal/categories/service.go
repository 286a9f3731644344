package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

// CreateInput captures a new category.
type CreateInput struct {
	Name string
	Kind enums.CategoryKind
}

// ServiceParams groups dependencies for the category service.
type ServiceParams struct {
	Repo Repository
}

// Service manages the portal's category taxonomy.
type Service struct {
	repo Repository
}

// NewService builds a category service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &Service{repo: params.Repo}, nil
}

// Create adds a category.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category kind")
	}

	category := &models.Category{Name: name, Kind: input.Kind}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

// FindByID loads one category.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return category, nil
}

// List returns categories, optionally scoped to the ones accepting a media type.
func (s *Service) List(ctx context.Context, mediaType *enums.MediaType) ([]models.Category, error) {
	var kind *enums.CategoryKind
	if mediaType != nil {
		if !mediaType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type filter")
		}
		k := enums.CategoryKind(*mediaType)
		kind = &k
	}
	items, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return items, nil
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}
