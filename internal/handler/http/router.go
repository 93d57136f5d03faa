package http

import (
	"log/slog"
	"os"

	"github.com/agritrack/attendance-backend-go/internal/config"
	"github.com/agritrack/attendance-backend-go/internal/handler/http/middleware"
	"github.com/agritrack/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	siteHandler SiteHandler,
	workerHandler WorkerHandler,
	eventHandler EventHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "agritrack-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", siteHandler.List)
				r.Get("/{siteID}", siteHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", siteHandler.Create)
					r.Put("/{siteID}", siteHandler.Update)
					r.Delete("/{siteID}", siteHandler.Delete)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", workerHandler.List)
				r.Get("/{workerID}", workerHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", workerHandler.Create)
					r.Put("/{workerID}", workerHandler.Update)
					r.Delete("/{workerID}", workerHandler.Delete)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.Submit)
				r.Post("/sync", eventHandler.SyncBatch)
				r.Get("/", eventHandler.List)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", reportHandler.DailySummary)
				r.Get("/worker-status", reportHandler.WorkerStatus)
				r.Get("/workers/{workerID}/range", reportHandler.RangeSummary)
				r.Get("/late-arrivals", reportHandler.LateArrivals)
			})

			// Platform admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.PlatformAdminOnly)
				r.Get("/analytics/overview", reportHandler.AnalyticsOverview)
			})
		})
	})
	return r
}
