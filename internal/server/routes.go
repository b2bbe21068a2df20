package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkshare/internal/auth"
	"linkshare/internal/db"
	"linkshare/internal/handlers"
	"linkshare/internal/handlers/api"
	"linkshare/internal/metrics"
	"linkshare/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB) {
	tokens := auth.NewTokenService(s.Cfg)
	hasher := auth.NewPasswordHasher(s.Cfg.BcryptCost)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(database)
	authHandler := api.NewAuthHandler(database, tokens, hasher)
	categoryHandler := api.NewCategoryHandler(database)
	linkHandler := api.NewLinkHandler(database)
	shareHandler := api.NewShareHandler(database)
	userHandler := api.NewUserHandler(database)

	// Probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Metrics
	if s.Cfg.MetricsEnabled {
		metrics.Init(database)
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Auth routes - public
	authGroup := s.App.Group("/auth")
	authGroup.Post("/sign-up", authHandler.SignUp)
	authGroup.Post("/sign-in", authHandler.SignIn)
	authGroup.Get("/refresh", authHandler.Refresh)
	authGroup.Post("/sign-out", authHandler.SignOut)

	// API routes - bearer token required
	apiGroup := s.App.Group("/api", authMiddleware.RequireAuth)

	apiGroup.Get("/categories", categoryHandler.List)

	apiGroup.Get("/links", linkHandler.List)
	apiGroup.Post("/links", linkHandler.Create)
	apiGroup.Get("/links/:id", linkHandler.Get)
	apiGroup.Put("/links/:id", linkHandler.Update)
	apiGroup.Delete("/links/:id", linkHandler.Delete)

	apiGroup.Post("/shares", shareHandler.Create)
	apiGroup.Get("/shares/:linkId", shareHandler.ListForLink)
	apiGroup.Put("/shares/:id", shareHandler.Update)
	apiGroup.Delete("/shares/:id", shareHandler.Delete)

	apiGroup.Get("/users", userHandler.List)
	apiGroup.Delete("/users/me", userHandler.DeleteMe)
}
