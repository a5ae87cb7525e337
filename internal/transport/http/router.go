package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/narcomap-api/internal/application/asset"
	"github.com/narcomap-api/internal/application/auth"
	"github.com/narcomap-api/internal/application/banner"
	"github.com/narcomap-api/internal/application/location"
	"github.com/narcomap-api/internal/application/logo"
	newsapp "github.com/narcomap-api/internal/application/news"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/config"
	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/narcomap-api/internal/infrastructure/jwt"
	s3infra "github.com/narcomap-api/internal/infrastructure/s3"
	"github.com/narcomap-api/internal/infrastructure/sns"
	"github.com/narcomap-api/internal/transport/http/handler"
	appmiddleware "github.com/narcomap-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AdminRepo        *dynamo.AdminRepo
	BannerRepo       *dynamo.BannerRepo
	LogoRepo         *dynamo.LogoRepo
	LocationRepo     *dynamo.LocationRepo
	NewsRepo         *dynamo.NewsRepo
	NotificationRepo *dynamo.NotificationRepo
	S3Store          *s3infra.Store
	Publisher        sns.EventPublisher
	JWTProvider      *jwtinfra.Provider
	DBProber         *dynamo.Prober
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	adminOnly := appmiddleware.RequireRole(domain.RoleAdmin, domain.RoleEditor)

	// ~100 requests/15min for the API at large, ~10/15min for credentials.
	generalRL := appmiddleware.NewRateLimiter(rate.Every(9*time.Second), 20)
	authRL := appmiddleware.NewRateLimiter(rate.Every(90*time.Second), 10)

	writeGuard := appmiddleware.WriteGuard(deps.DBProber)

	assetSvc := asset.NewService(deps.S3Store)
	emitter := notification.NewEmitter(deps.NotificationRepo, deps.Publisher)
	authSvc := auth.NewService(deps.AdminRepo, deps.JWTProvider, cfg.SuperAdminID)
	bannerSvc := banner.NewService(deps.BannerRepo, assetSvc)
	logoSvc := logo.NewService(deps.LogoRepo, assetSvc)
	locationSvc := location.NewService(deps.LocationRepo, emitter)
	newsSvc := newsapp.NewService(deps.NewsRepo, assetSvc, emitter)
	notifSvc := notification.NewService(deps.NotificationRepo)

	healthH := handler.NewHealthHandler(deps.DBProber, deps.S3Store != nil)
	authH := handler.NewAuthHandler(authSvc)
	bannerH := handler.NewBannerHandler(bannerSvc)
	logoH := handler.NewLogoHandler(logoSvc)
	locationH := handler.NewLocationHandler(locationSvc)
	newsH := handler.NewNewsHandler(newsSvc)
	notifH := handler.NewNotificationHandler(notifSvc)

	r.Get("/health", healthH.Status)

	r.Route("/api", func(r chi.Router) {
		r.Use(generalRL.Limit)
		r.Use(writeGuard)

		r.Get("/", handler.Index)
		r.Get("/health", healthH.Status)

		// ── Public routes (no auth) ─────────────────────────────────────
		r.With(authRL.Limit).Post("/auth/login", authH.Login)

		r.Get("/banner/active", bannerH.Active)
		r.Get("/logo/active", logoH.Active)
		r.Get("/locations", locationH.List)
		r.Get("/locations/statistics", locationH.Statistics)
		r.Get("/locations/{id}", locationH.Get)
		r.With(appmiddleware.OptionalAuth(deps.JWTProvider)).Get("/news", newsH.List)
		r.Get("/news/{id}", newsH.Get)

		// ── Authenticated admin routes ──────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(adminOnly)

			r.With(authRL.Limit).Post("/auth/register", authH.Register)
			r.Get("/auth/me", authH.Me)
			r.Get("/auth/users", authH.List)
			r.Put("/auth/users/{id}", authH.Update)
			r.Delete("/auth/users/{id}", authH.Delete)
			r.Put("/auth/users/{id}/reset-password", authH.ResetPassword)

			r.Get("/banner", bannerH.List)
			r.Post("/banner", bannerH.Save)
			r.Patch("/banner/{id}", bannerH.PatchMeta)
			r.Delete("/banner/{id}", bannerH.Delete)

			r.Get("/logo", logoH.List)
			r.Post("/logo", logoH.Save)
			r.Patch("/logo/{id}", logoH.PatchMeta)
			r.Delete("/logo/{id}", logoH.Delete)

			r.Post("/locations", locationH.Create)
			r.Put("/locations/{id}", locationH.Update)
			r.Delete("/locations/{id}", locationH.Delete)

			r.Post("/news", newsH.Create)
			r.Put("/news/{id}", newsH.Update)
			r.Delete("/news/{id}", newsH.Delete)

			r.Get("/notifications", notifH.List)
			r.Get("/notifications/count", notifH.Count)
			r.Patch("/notifications/read-all", notifH.MarkAllRead)
			r.Patch("/notifications/{id}/read", notifH.MarkRead)
		})
	})

	return r
}
