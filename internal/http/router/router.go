// Package router arma la tabla de rutas chi del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	authctrl "github.com/hiredvalley/hired-backend/internal/http/controllers/auth"
	healthctrl "github.com/hiredvalley/hired-backend/internal/http/controllers/health"
	httperrors "github.com/hiredvalley/hired-backend/internal/http/errors"
	mw "github.com/hiredvalley/hired-backend/internal/http/middlewares"
	"github.com/hiredvalley/hired-backend/internal/rate"
)

// AuthPrefix es el prefijo de las rutas de auth.
const AuthPrefix = "/api/v1/auth"

// Deps contiene las dependencias del router.
type Deps struct {
	Auth   *authctrl.Controllers
	Health *healthctrl.HealthController

	// Opcionales
	Metrics     http.Handler // handler de /metrics
	HTTPMetrics *mw.HTTPMetrics
	RateLimiter rate.Limiter // aplica a signup/login
	CORSOrigins []string
	// TrustProxyHeaders: la IP del rate limit sale de X-Forwarded-For.
	TrustProxyHeaders bool
}

// New registra todas las rutas.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithRecover(),
		mw.WithMetrics(d.HTTPMetrics),
		mw.WithCORS(d.CORSOrigins),
	)

	// Antes de Route(): los subrouters heredan estos handlers.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Get("/readyz", d.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route(AuthPrefix, func(r chi.Router) {
		RegisterAuthRoutes(r, d.Auth, d.RateLimiter, mw.IPRouteKey(d.TrustProxyHeaders))
		r.Get("/health", d.Health.Health)
	})

	return r
}

// RegisterAuthRoutes registra signup, login, protected y profile.
func RegisterAuthRoutes(r chi.Router, c *authctrl.Controllers, limiter rate.Limiter, key mw.RateKeyFunc) {
	r.Group(func(r chi.Router) {
		r.Use(mw.WithNoStore())

		// Credenciales: rate limit por IP
		r.Group(func(r chi.Router) {
			r.Use(mw.WithRateLimit(limiter, key))
			r.Post("/signup", c.Signup.Signup)
			r.Post("/login", c.Login.Login)
		})

		r.Get("/protected", c.Protected.Protected)
	})

	r.Get("/profile/{auth_uid}", c.Profile.GetProfile)
}
