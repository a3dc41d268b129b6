package handler

import (
	"net/http"

	"github.com/forgo/agenda/internal/middleware"
	"github.com/forgo/agenda/internal/service"
)

// Guard wraps an endpoint with authentication and a role gate
type Guard func(h http.HandlerFunc, roles ...service.Role) http.Handler

// RouterConfig holds everything needed to build the API routes
type RouterConfig struct {
	Auth        middleware.AuthService
	RateLimiter *middleware.RateLimiter // optional

	Events     *EventHandler
	Categories *CategoryHandler
	Users      *UserHandler
	Health     *HealthHandler
}

// NewGuard returns a Guard that validates the bearer token, applies the
// per-caller rate limit and then checks roles
func NewGuard(auth middleware.AuthService, limiter *middleware.RateLimiter) Guard {
	return func(h http.HandlerFunc, roles ...service.Role) http.Handler {
		mws := []middleware.Middleware{middleware.Auth(auth)}
		if limiter != nil {
			mws = append(mws, middleware.RateLimit(limiter))
		}
		mws = append(mws, middleware.RequireRole(roles...))
		return middleware.Chain(h, mws...)
	}
}

// NewRouter registers every route on a new ServeMux
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	guard := NewGuard(cfg.Auth, cfg.RateLimiter)

	health := cfg.Health
	if health == nil {
		health = NewHealthHandler(nil)
	}
	mux.HandleFunc("GET /health", health.Health)

	if cfg.Categories != nil {
		cfg.Categories.RegisterRoutes(mux, guard)
	}
	if cfg.Events != nil {
		cfg.Events.RegisterRoutes(mux, guard)
	}
	if cfg.Users != nil {
		cfg.Users.RegisterRoutes(mux, guard)
	}

	return mux
}
