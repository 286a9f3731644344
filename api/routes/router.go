package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loungecast/loungecast-backend/api/controllers"
	"github.com/loungecast/loungecast-backend/api/middleware"
	adsvc "github.com/loungecast/loungecast-backend/internal/advertisements"
	authsvc "github.com/loungecast/loungecast-backend/internal/auth"
	categorysvc "github.com/loungecast/loungecast-backend/internal/categories"
	dashboardsvc "github.com/loungecast/loungecast-backend/internal/dashboard"
	streamsvc "github.com/loungecast/loungecast-backend/internal/livestreams"
	mediasvc "github.com/loungecast/loungecast-backend/internal/media"
	settingsvc "github.com/loungecast/loungecast-backend/internal/settings"
	suggestionsvc "github.com/loungecast/loungecast-backend/internal/suggestions"
	"github.com/loungecast/loungecast-backend/internal/users"
	"github.com/loungecast/loungecast-backend/pkg/auth/session"
	"github.com/loungecast/loungecast-backend/pkg/config"
	"github.com/loungecast/loungecast-backend/pkg/db"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	"github.com/loungecast/loungecast-backend/pkg/logger"
	"github.com/loungecast/loungecast-backend/pkg/metrics"
	"github.com/loungecast/loungecast-backend/pkg/redis"
)

type rateLimitStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	Auth           authsvc.Service
	UserRepo       *users.Repository
	Users          *users.Service
	Suggestions    *suggestionsvc.Service
	Media          *mediasvc.Service
	Categories     *categorysvc.Service
	Streams        *streamsvc.Service
	Advertisements *adsvc.Service
	Settings       *settingsvc.Service
	Dashboard      *dashboardsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// A nil *redis.Client must not reach the interfaces as a typed nil.
	var redisPinger redis.Pinger
	var rateStore rateLimitStore
	if deps.Redis != nil {
		redisPinger = deps.Redis
		rateStore = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	requireAdmin := middleware.RequireAdmin(logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	metricsHandler := deps.MetricsHTTP
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
			r.Get("/me", controllers.AuthMe(deps.UserRepo, logg))
		})
	})

	// Guest-facing browse surface. Readable without a token so the lounge
	// displays can render before sign-in.
	r.Group(func(r chi.Router) {
		r.Get("/api/categories", controllers.ListCategories(deps.Categories, logg))
		r.Get("/api/media", controllers.ListMedia(deps.Media, logg))
		r.Get("/api/media/featured", controllers.FeaturedMedia(deps.Media, cfg.Portal.FeaturedMediaLimit, logg))
		r.Get("/api/media/{id}", controllers.GetMedia(deps.Media, logg))
		r.Get("/api/vote-suggestions", controllers.PendingSuggestions(deps.Suggestions, logg))
		r.Get("/api/live-streams/active", controllers.LiveStreams(deps.Streams, logg))
		r.Get("/api/live-streams/upcoming", controllers.UpcomingStreams(deps.Streams, logg))
		r.Get("/api/advertisements/active", controllers.ActiveAdvertisements(deps.Advertisements, logg))
	})

	// Actions that charge quota or record votes need an authenticated guest.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/ping", controllers.PrivatePing())
		r.Post("/api/vote-suggestions", controllers.SubmitSuggestion(deps.Suggestions, logg))
		r.Post("/api/vote-suggestions/{id}/vote", controllers.VoteSuggestion(deps.Suggestions, logg))
		r.Get("/api/vote-suggestions/mine", controllers.MySuggestions(deps.Suggestions, logg))
		r.Get("/api/vote-suggestions/my-votes", controllers.MyVotes(deps.Suggestions, logg))
		r.Get("/api/users/suggestions-count", controllers.SuggestionQuota(deps.Suggestions, logg))
	})

	// Admin management surface.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)

		r.Post("/api/vote-suggestions/{id}/approve", controllers.ResolveSuggestion(deps.Suggestions, enums.SuggestionStatusApproved, logg))
		r.Post("/api/vote-suggestions/{id}/reject", controllers.ResolveSuggestion(deps.Suggestions, enums.SuggestionStatusRejected, logg))

		r.Get("/api/users", controllers.ListUsers(deps.Users, logg))
		r.Post("/api/users", controllers.CreateUser(deps.Users, logg))
		r.Patch("/api/users/{id}", controllers.UpdateUser(deps.Users, logg))
		r.Delete("/api/users/{id}", controllers.DeleteUser(deps.Users, logg))

		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/ping", controllers.AdminPing())
			r.Get("/stats", controllers.DashboardStats(deps.Dashboard, logg))
			r.Get("/recent-content", controllers.RecentContent(deps.Media, logg))
			r.Get("/vote-suggestions", controllers.ListSuggestions(deps.Suggestions, logg))
			r.Get("/top-voted", controllers.TopVotedSuggestions(deps.Suggestions, cfg.Portal.TopVotedLimit, logg))

			r.Route("/media", func(r chi.Router) {
				r.Post("/", controllers.CreateMedia(deps.Media, logg))
				r.Patch("/{id}", controllers.UpdateMedia(deps.Media, logg))
				r.Delete("/{id}", controllers.DeleteMedia(deps.Media, logg))
				r.Post("/{id}/seasons", controllers.AddSeason(deps.Media, logg))
				r.Post("/seasons/{seasonID}/episodes", controllers.AddEpisode(deps.Media, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.CreateCategory(deps.Categories, logg))
				r.Delete("/{id}", controllers.DeleteCategory(deps.Categories, logg))
			})

			r.Route("/live-streams", func(r chi.Router) {
				r.Get("/", controllers.ListStreams(deps.Streams, logg))
				r.Post("/", controllers.CreateStream(deps.Streams, logg))
				r.Patch("/{id}", controllers.UpdateStream(deps.Streams, logg))
				r.Patch("/{id}/active", controllers.SetStreamActive(deps.Streams, logg))
				r.Delete("/{id}", controllers.DeleteStream(deps.Streams, logg))
			})

			r.Route("/advertisements", func(r chi.Router) {
				r.Get("/", controllers.ListAdvertisements(deps.Advertisements, logg))
				r.Post("/", controllers.CreateAdvertisement(deps.Advertisements, logg))
				r.Patch("/{id}", controllers.UpdateAdvertisement(deps.Advertisements, logg))
				r.Patch("/{id}/active", controllers.SetAdvertisementActive(deps.Advertisements, logg))
				r.Delete("/{id}", controllers.DeleteAdvertisement(deps.Advertisements, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.GetSettings(deps.Settings, logg))
				r.Put("/", controllers.UpdateSettings(deps.Settings, logg))
			})
		})
	})

	return r
}
