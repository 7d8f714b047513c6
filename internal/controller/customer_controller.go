// internal/controller/customer_controller.go
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/middleware"
	"github.com/unclebandit/customer-bootstrap/internal/model"
	"github.com/unclebandit/customer-bootstrap/internal/service"
)

// CustomerReader is the read side used by CustomerController.
type CustomerReader interface {
	ListByCountry(ctx context.Context, country string) ([]model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

type CustomerController struct {
	Customers CustomerReader
}

// ListCustomers handles GET /customers?country=
func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")

	customers, err := c.Customers.ListByCountry(r.Context(), country)
	if err != nil {
		c.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

// GetCustomer handles GET /customers/{id}
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	customer, err := c.Customers.GetByID(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if customer == nil {
		http.Error(w, "customer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customer)
}

func (c *CustomerController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNoStore) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	log.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Msg("customer lookup failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
