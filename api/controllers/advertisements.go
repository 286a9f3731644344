package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/loungecast/loungecast-backend/api/responses"
	"github.com/loungecast/loungecast-backend/api/validators"
	adsvc "github.com/loungecast/loungecast-backend/internal/advertisements"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/logger"
)

type createAdRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	ImageURL    string     `json:"image_url" validate:"required,url"`
	LinkURL     *string    `json:"link_url,omitempty" validate:"omitempty,url"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    bool       `json:"is_active"`
	Priority    int        `json:"priority" validate:"omitempty,min=0,max=100"`
}

type updateAdRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	LinkURL     *string    `json:"link_url,omitempty" validate:"omitempty,url"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	Priority    *int       `json:"priority,omitempty" validate:"omitempty,min=0,max=100"`
}

// ActiveAdvertisements serves the rotation currently eligible for display.
func ActiveAdvertisements(svc *adsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advertisement service unavailable"))
			return
		}

		items, err := svc.Active(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// CreateAdvertisement schedules an ad on the admin surface.
func CreateAdvertisement(svc *adsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advertisement service unavailable"))
			return
		}

		var body createAdRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ad, err := svc.Create(r.Context(), adsvc.CreateInput{
			Title:       body.Title,
			Description: body.Description,
			ImageURL:    body.ImageURL,
			LinkURL:     body.LinkURL,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
			IsActive:    body.IsActive,
			Priority:    body.Priority,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ad)
	}
}

// ListAdvertisements returns the full schedule for the admin surface.
func ListAdvertisements(svc *adsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advertisement service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// UpdateAdvertisement edits a campaign on the admin surface.
func UpdateAdvertisement(svc *adsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advertisement service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateAdRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ad, err := svc.Update(r.Context(), id, adsvc.UpdateInput{
			Title:       body.Title,
			Description: body.Description,
			ImageURL:    body.ImageURL,
			LinkURL:     body.LinkURL,
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
			IsActive:    body.IsActive,
			Priority:    body.Priority,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ad)
	}
}

// SetAdvertisementActive toggles an ad in or out of the rotation.
func SetAdvertisementActive(svc *adsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advertisement service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setActiveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), id, *body.IsActive); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// DeleteAdvertisement removes an ad from the schedule.
func DeleteAdvertisement(svc *adsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "advertisement service unavailable"))
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
