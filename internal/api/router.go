package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pulseboard/pulseboard/internal/api/handler"
	"github.com/pulseboard/pulseboard/internal/api/middleware"
	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/feedback"
	"github.com/pulseboard/pulseboard/internal/profile"
)

// RouterDeps holds all dependencies needed by the router. Nil dependencies
// disable their route groups: a server without a database or session store
// still starts and serves /health as degraded.
type RouterDeps struct {
	Auth           *auth.Service
	Profiles       profile.Repository
	Feedback       feedback.Repository
	FeedbackSvc    *feedback.Service
	Stats          *feedback.StatsService
	DBPinger       handler.Pinger
	RedisPinger    handler.Pinger
	AllowedOrigins []string
	Version        string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.RedisPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.Auth != nil {
		authHandler := handler.NewAuthHandler(deps.Auth)
		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/signout", authHandler.SignOut)
			r.With(middleware.Auth(deps.Auth)).Get("/me", authHandler.Me)
		})
	}

	if deps.Auth != nil && deps.Profiles != nil {
		profileHandler := handler.NewProfileHandler(deps.Profiles)
		r.With(middleware.Auth(deps.Auth)).Get("/api/profile", profileHandler.Get)
	}

	if deps.Auth != nil && deps.Feedback != nil && deps.FeedbackSvc != nil {
		feedbackHandler := handler.NewFeedbackHandler(deps.FeedbackSvc, deps.Feedback)
		r.Route("/api/feedback", func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth))
			r.Get("/", feedbackHandler.List)
			r.Post("/", feedbackHandler.Create)
		})
	}

	if deps.Auth != nil && deps.Stats != nil && deps.Feedback != nil {
		statsHandler := handler.NewStatsHandler(deps.Stats, deps.Feedback)
		r.Route("/api/stats", func(r chi.Router) {
			r.Use(middleware.Auth(deps.Auth))
			r.Get("/dashboard", statsHandler.Dashboard)
			r.Get("/admin", statsHandler.Admin)
		})
	}

	return r
}
