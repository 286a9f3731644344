package controllers

import (
	"net/http"

	"github.com/loungecast/loungecast-backend/api/responses"
	"github.com/loungecast/loungecast-backend/api/validators"
	dashboardsvc "github.com/loungecast/loungecast-backend/internal/dashboard"
	mediasvc "github.com/loungecast/loungecast-backend/internal/media"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/logger"
)

// DashboardStats serves the admin overview counters.
func DashboardStats(svc *dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

// RecentContent lists the latest catalog additions for the admin overview.
func RecentContent(svc *mediasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 50)
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
