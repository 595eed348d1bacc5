package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter wires the HTTP surface. Quota enforcement happens inside the
// search handler; the middleware chain only authenticates, localizes and
// meters requests.
func NewRouter(app *handlers.App, log zerolog.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.Metrics,
	)
	r.Use(middleware.CORS(app.Config.CORSAllowedOrigins))
	if app.Config.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))
	}
	r.Use(middleware.I18N("en", lookup))

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/plans", app.Plans)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(app.Config.JWTSecret))
		r.Post("/v1/search", app.Search)
		r.Get("/v1/search/history", app.SearchHistory)
		r.Get("/v1/usage", app.Usage)
	})

	return r
}
