package handler

import (
	"net/http"

	"session-security/internal/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth    *AuthenticationHandler
	Users   *UserHandler
	CSRF    *CSRFHandler
	Health  *HealthHandler
	Metrics http.Handler
}

// Security : то, что нужно маршрутам для аутентификации и CSRF
type Security struct {
	Validator security.TokenValidator
	Cookies   *security.CookieBuilder
	Guard     *security.CSRFGuard
}

func SetupRoutes(r chi.Router, h *Handlers, sec *Security) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(SecurityHeaders)

	setupHealthRoutes(r, h)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/csrf", h.CSRF.GetCSRFToken)
		r.Post("/users", h.Users.RegisterUser)

		setupAuthRoutes(r, h.Auth, sec)
	})
}

func setupHealthRoutes(r chi.Router, h *Handlers) {
	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
}

func setupAuthRoutes(r chi.Router, h *AuthenticationHandler, sec *Security) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		// выход срабатывает всегда, даже без пары CSRF
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(sec.Guard.Middleware)
			r.Post("/refresh", h.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(security.JWTMiddleware(sec.Validator, sec.Cookies.AccessName()))
				r.Get("/me", h.GetCurrentUser)
				r.Head("/me", h.GetCurrentUser)
			})
		})
	})
}
