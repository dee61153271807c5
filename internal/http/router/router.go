package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront-drive/internal/http/handlers"
	"storefront-drive/internal/http/middleware"
	"storefront-drive/internal/logx"
)

// Deps are the handlers the router mounts.
type Deps struct {
	Base     *handlers.Handlers
	Checkout *handlers.CheckoutHandler
	Webhook  *handlers.WebhookHandler
	Logs     *handlers.LogsHandler
	Logger   logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/quotes", d.Checkout.Quote)

		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/", d.Checkout.Book)
			r.Get("/", d.Checkout.List)
			r.Get("/{id}", d.Checkout.Get)
			r.Get("/{id}/tracking", d.Checkout.Track)
			r.Post("/{orderReference}/cancel", d.Checkout.Cancel)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/readiness", d.Checkout.Readiness)
			r.Get("/dates", d.Checkout.Dates)
			r.Get("/slots", d.Checkout.Slots)
		})

		r.Post("/venues/available", d.Checkout.AvailableVenues)

		r.Route("/wolt/webhooks", func(r chi.Router) {
			r.Post("/", d.Webhook.Receive)
			r.Get("/", d.Webhook.ListEvents)
		})

		r.Get("/logs", d.Logs.List)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
