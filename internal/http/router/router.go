package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"service-fleet-dispatch/internal/http/handlers"
	obs "service-fleet-dispatch/internal/http/middleware"
	"service-fleet-dispatch/internal/http/middleware/ratelimit"
	"service-fleet-dispatch/internal/logx"
)

// Deps are the collaborators of the router. Everything but Base and Offers is optional.
type Deps struct {
	Base        *handlers.Handlers
	Offers      *handlers.OffersHandler
	Logger      logx.Logger
	HTTPMetrics *obs.HTTPMetrics
	RateLimit   *ratelimit.Middleware
	Metrics     http.Handler // served on GET /metrics
	Timeout     time.Duration
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey", handlers.ActorHeader}
)

// optionsNoContent answers OPTIONS requests that the cors middleware does not
// treat as a pre-flight (no Origin or no Access-Control-Request-Method).
func optionsNoContent(w http.ResponseWriter, _ *http.Request) {
	h := w.Header()
	if h.Get("Access-Control-Allow-Origin") == "" {
		h.Set("Access-Control-Allow-Origin", "*")
	}
	h.Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(corsHeaders, ", "))
	w.WriteHeader(http.StatusNoContent)
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Timeout <= 0 {
		d.Timeout = 5 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(d.Logger, d.HTTPMetrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: corsMethods,
		AllowedHeaders: corsHeaders,
		MaxAge:         300,
	}))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/v1/offers", func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}
		r.Use(middleware.Timeout(d.Timeout))
		r.Post("/broadcast", d.Offers.Broadcast)
		r.Post("/resolve", d.Offers.Resolve)
		r.Options("/broadcast", optionsNoContent)
		r.Options("/resolve", optionsNoContent)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
