package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/loungecast/loungecast-backend/api/responses"
	"github.com/loungecast/loungecast-backend/api/validators"
	categorysvc "github.com/loungecast/loungecast-backend/internal/categories"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	Kind string `json:"kind" validate:"required,oneof=movie series both"`
}

// ListCategories serves the taxonomy, optionally narrowed to a media type.
func ListCategories(svc *categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		var mediaType *enums.MediaType
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			parsed, err := enums.ParseMediaType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type"))
				return
			}
			mediaType = &parsed
		}

		items, err := svc.List(r.Context(), mediaType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// CreateCategory adds a taxonomy entry on the admin surface.
func CreateCategory(svc *categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseCategoryKind(body.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category kind"))
			return
		}

		category, err := svc.Create(r.Context(), categorysvc.CreateInput{
			Name: body.Name,
			Kind: kind,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// DeleteCategory removes a taxonomy entry.
func DeleteCategory(svc *categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
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
