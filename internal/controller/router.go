// internal/controller/router.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/middleware"
)

type Controllers struct {
	Health   *HealthController
	Time     *TimeController
	Import   *ImportController
	Customer *CustomerController
}

// NewRouter wires the controllers behind the shared middleware chain.
func NewRouter(cfg config.Config, c Controllers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/health", c.Health.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitBurst))

		r.Get("/time", c.Time.GetTime)
		r.Post("/imports", c.Import.CreateImport)
		r.Get("/customers", c.Customer.ListCustomers)
		r.Get("/customers/{id}", c.Customer.GetCustomer)
	})

	return r
}
