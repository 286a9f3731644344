package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/pagination"
)

// CreateInput captures a new catalog entry.
type CreateInput struct {
	Title        string
	Description  string
	Type         enums.MediaType
	CategoryID   uuid.UUID
	ThumbnailURL string
	FilePath     string
	Year         int
}

// SeasonInput adds a season to a series.
type SeasonInput struct {
	MediaID      uuid.UUID
	SeasonNumber int
	Title        string
}

// EpisodeInput adds an episode to a season.
type EpisodeInput struct {
	SeasonID      uuid.UUID
	EpisodeNumber int
	Title         string
	FilePath      string
}

// UpdateInput carries partial edits to a catalog entry. Nil fields keep their
// current value.
type UpdateInput struct {
	Title        *string
	Description  *string
	CategoryID   *uuid.UUID
	ThumbnailURL *string
	FilePath     *string
	Year         *int
}

// ListParams carries catalog list filters from the controller.
type ListParams struct {
	Type       *enums.MediaType
	CategoryID *uuid.UUID
	Search     string
	Limit      int
	Cursor     string
}

// ListResult is one page of catalog entries.
type ListResult struct {
	Items      []models.Media
	NextCursor string
}

// Detail bundles a series with its seasons and episodes.
type Detail struct {
	Media   models.Media   `json:"media"`
	Seasons []SeasonDetail `json:"seasons,omitempty"`
}

// SeasonDetail is a season plus its episodes.
type SeasonDetail struct {
	Season   models.SeriesSeason    `json:"season"`
	Episodes []models.SeriesEpisode `json:"episodes"`
}

// categorySource checks the category a catalog entry targets.
type categorySource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// ServiceParams groups dependencies for the media service.
type ServiceParams struct {
	Repo       Repository
	Categories categorySource
}

// Service manages the lounge's movie and series catalog.
type Service struct {
	repo       Repository
	categories categorySource
}

// NewService builds a media service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("category source required")
	}
	return &Service{repo: params.Repo, categories: params.Categories}, nil
}

// Create adds a catalog entry after checking the category accepts its type.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Media, error) {
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
	if strings.TrimSpace(input.FilePath) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file path required")
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

	item := &models.Media{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Type:         input.Type,
		CategoryID:   input.CategoryID,
		ThumbnailURL: input.ThumbnailURL,
		FilePath:     input.FilePath,
		Year:         input.Year,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media")
	}
	return item, nil
}

// List returns one catalog page.
func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Type != nil && !params.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media type filter")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	items, next, err := s.repo.List(ctx, ListMediaQuery{
		Type:       params.Type,
		CategoryID: params.CategoryID,
		Search:     strings.TrimSpace(params.Search),
		Limit:      params.Limit,
		Cursor:     cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}

	result := &ListResult{Items: items}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// Featured returns the newest catalog entries for the portal home screen.
func (s *Service) Featured(ctx context.Context, limit int) ([]models.Media, error) {
	items, err := s.repo.ListLatest(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured media")
	}
	return items, nil
}

// Get loads a catalog entry; series come back with seasons and episodes.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}

	detail := &Detail{Media: *item}
	if item.Type != enums.MediaTypeSeries {
		return detail, nil
	}

	seasons, err := s.repo.ListSeasons(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seasons")
	}
	for _, season := range seasons {
		episodes, err := s.repo.ListEpisodes(ctx, season.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list episodes")
		}
		detail.Seasons = append(detail.Seasons, SeasonDetail{Season: season, Episodes: episodes})
	}
	return detail, nil
}

// Update edits a catalog entry in place. A new category must still accept the
// entry's type.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Media, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
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
	if input.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		if category == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if !category.Kind.Accepts(item.Type) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not accept this media type")
		}
		fields["category_id"] = *input.CategoryID
	}
	if input.ThumbnailURL != nil {
		fields["thumbnail_url"] = *input.ThumbnailURL
	}
	if input.FilePath != nil {
		if strings.TrimSpace(*input.FilePath) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "file path required")
		}
		fields["file_path"] = *input.FilePath
	}
	if input.Year != nil {
		fields["year"] = *input.Year
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	ok, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update media")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	return updated, nil
}

// Delete removes a catalog entry and, for series, cascades to its seasons.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return nil
}

// AddSeason attaches a season to a series entry.
func (s *Service) AddSeason(ctx context.Context, input SeasonInput) (*models.SeriesSeason, error) {
	if input.SeasonNumber <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "season number must be positive")
	}

	item, err := s.repo.FindByID(ctx, input.MediaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	if item.Type != enums.MediaTypeSeries {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seasons only apply to series")
	}

	season := &models.SeriesSeason{
		MediaID:      input.MediaID,
		SeasonNumber: input.SeasonNumber,
		Title:        strings.TrimSpace(input.Title),
	}
	if err := s.repo.CreateSeason(ctx, season); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create season")
	}
	return season, nil
}

// AddEpisode attaches an episode to a season.
func (s *Service) AddEpisode(ctx context.Context, input EpisodeInput) (*models.SeriesEpisode, error) {
	if input.EpisodeNumber <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "episode number must be positive")
	}
	if strings.TrimSpace(input.FilePath) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file path required")
	}

	season, err := s.repo.FindSeason(ctx, input.SeasonID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load season")
	}
	if season == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "season not found")
	}

	episode := &models.SeriesEpisode{
		SeasonID:      input.SeasonID,
		EpisodeNumber: input.EpisodeNumber,
		Title:         strings.TrimSpace(input.Title),
		FilePath:      input.FilePath,
	}
	if err := s.repo.CreateEpisode(ctx, episode); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create episode")
	}
	return episode, nil
}
