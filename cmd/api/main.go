package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loungecast/loungecast-backend/api/routes"
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
	"github.com/loungecast/loungecast-backend/pkg/logger"
	"github.com/loungecast/loungecast-backend/pkg/metrics"
	"github.com/loungecast/loungecast-backend/pkg/migrate"
	"github.com/loungecast/loungecast-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	userService, err := users.NewService(users.ServiceParams{
		Repo:           userRepo,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	settingsRepo := settingsvc.NewRepository(dbClient.DB())
	settingsService, err := settingsvc.NewService(settingsvc.ServiceParams{
		Repo:                       settingsRepo,
		DefaultMaxDailySuggestions: cfg.Portal.MaxDailySuggestions,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}
	if err := settingsService.EnsureSeeded(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed portal settings", err)
		os.Exit(1)
	}

	categoryRepo := categorysvc.NewRepository(dbClient.DB())
	categoryService, err := categorysvc.NewService(categorysvc.ServiceParams{Repo: categoryRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	mediaService, err := mediasvc.NewService(mediasvc.ServiceParams{
		Repo:       mediasvc.NewRepository(dbClient.DB()),
		Categories: categoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	suggestionRepo := suggestionsvc.NewRepository(dbClient.DB())
	quotaTracker, err := suggestionsvc.NewQuotaTracker(settingsService, suggestionRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create quota tracker", err)
		os.Exit(1)
	}
	suggestionService, err := suggestionsvc.NewService(suggestionsvc.ServiceParams{
		Repo:       suggestionRepo,
		Ledger:     suggestionsvc.NewLedger(dbClient.DB()),
		Quota:      quotaTracker,
		Tx:         dbClient,
		Categories: categoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create suggestion service", err)
		os.Exit(1)
	}

	streamService, err := streamsvc.NewService(streamsvc.ServiceParams{
		Repo: streamsvc.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stream service", err)
		os.Exit(1)
	}

	adService, err := adsvc.NewService(adsvc.ServiceParams{
		Repo: adsvc.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create advertisement service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboardsvc.NewService(dashboardsvc.ServiceParams{DB: dbClient.DB()})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			Sessions:       sessionManager,
			HTTPMetrics:    httpMetrics,
			MetricsHTTP:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Auth:           authService,
			UserRepo:       userRepo,
			Users:          userService,
			Suggestions:    suggestionService,
			Media:          mediaService,
			Categories:     categoryService,
			Streams:        streamService,
			Advertisements: adService,
			Settings:       settingsService,
			Dashboard:      dashboardService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
