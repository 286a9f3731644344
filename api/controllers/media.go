package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/loungecast/loungecast-backend/api/responses"
	"github.com/loungecast/loungecast-backend/api/validators"
	mediasvc "github.com/loungecast/loungecast-backend/internal/media"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/logger"
	"github.com/loungecast/loungecast-backend/pkg/pagination"
)

type createMediaRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description,omitempty"`
	Type         string `json:"type" validate:"required,oneof=movie series"`
	CategoryID   string `json:"category_id" validate:"required,uuid"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	FilePath     string `json:"file_path,omitempty"`
	Year         int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
}

type updateMediaRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description  *string `json:"description,omitempty"`
	CategoryID   *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	FilePath     *string `json:"file_path,omitempty"`
	Year         *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
}

type addSeasonRequest struct {
	SeasonNumber int    `json:"season_number" validate:"required,min=1"`
	Title        string `json:"title,omitempty" validate:"omitempty,max=255"`
}

type addEpisodeRequest struct {
	EpisodeNumber int    `json:"episode_number" validate:"required,min=1"`
	Title         string `json:"title" validate:"required,max=255"`
	FilePath      string `json:"file_path,omitempty"`
}

type mediaListResponse struct {
	Items      any    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// ListMedia serves the browsable catalog with filters and cursor paging.
func ListMedia(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		params := mediasvc.ListParams{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			mediaType, err := enums.ParseMediaType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type"))
				return
			}
			params.Type = &mediaType
		}

		categoryID, err := validators.ParseQueryUUID(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.CategoryID = categoryID

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Limit = limit

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, mediaListResponse{Items: result.Items, NextCursor: result.NextCursor})
	}
}

// FeaturedMedia returns the latest additions for the portal home screen.
func FeaturedMedia(svc *mediasvc.Service, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, 24)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Featured(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// GetMedia returns one catalog entry, including seasons for a series.
func GetMedia(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// CreateMedia adds a catalog entry on the admin surface.
func CreateMedia(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		var body createMediaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mediaType, err := enums.ParseMediaType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type"))
			return
		}

		categoryID, err := validators.ParsePathUUID(body.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		media, err := svc.Create(r.Context(), mediasvc.CreateInput{
			Title:        body.Title,
			Description:  body.Description,
			Type:         mediaType,
			CategoryID:   categoryID,
			ThumbnailURL: body.ThumbnailURL,
			FilePath:     body.FilePath,
			Year:         body.Year,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, media)
	}
}

// UpdateMedia edits a catalog entry on the admin surface.
func UpdateMedia(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMediaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := mediasvc.UpdateInput{
			Title:        body.Title,
			Description:  body.Description,
			ThumbnailURL: body.ThumbnailURL,
			FilePath:     body.FilePath,
			Year:         body.Year,
		}
		if body.CategoryID != nil {
			categoryID, err := validators.ParsePathUUID(*body.CategoryID, "category_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.CategoryID = &categoryID
		}

		media, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, media)
	}
}

// DeleteMedia removes a catalog entry and its seasons.
func DeleteMedia(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AddSeason appends a season to a series entry.
func AddSeason(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		mediaID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addSeasonRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		season, err := svc.AddSeason(r.Context(), mediasvc.SeasonInput{
			MediaID:      mediaID,
			SeasonNumber: body.SeasonNumber,
			Title:        body.Title,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, season)
	}
}

// AddEpisode appends an episode to a season.
func AddEpisode(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		seasonID, err := validators.ParsePathUUID(chi.URLParam(r, "seasonID"), "seasonID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addEpisodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		episode, err := svc.AddEpisode(r.Context(), mediasvc.EpisodeInput{
			SeasonID:      seasonID,
			EpisodeNumber: body.EpisodeNumber,
			Title:         body.Title,
			FilePath:      body.FilePath,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, episode)
	}
}
