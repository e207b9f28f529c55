package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/wolfman30/onboarding-assistant/internal/http/middleware"
	"github.com/wolfman30/onboarding-assistant/internal/onboarding"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	OnboardingHandler  *onboarding.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimiter is applied to the chat and email endpoints when set.
	RateLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	h := cfg.OnboardingHandler

	r.Group(func(public chi.Router) {
		public.Get("/health", h.HealthCheck)
		public.Get("/questions", h.Questions)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Group(func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimiter, cfg.Logger))
		}
		api.Use(middleware.AllowContentType("application/json"))
		api.Post("/chat", h.Chat)
		api.Post("/email", h.Email)
	})

	return r
}
