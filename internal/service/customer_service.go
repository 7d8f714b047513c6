// internal/service/customer_service.go
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/cache"
	"github.com/unclebandit/customer-bootstrap/internal/model"
	"github.com/unclebandit/customer-bootstrap/internal/repository"
)

// ErrNoStore is returned when a read needs Postgres and none is configured.
var ErrNoStore = errors.New("customer store not configured")

// CustomerService reads stored customers, using the cache when it has them.
// Cache is optional.
type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Cache        cache.CustomerCache
}

// ListByCountry returns the customers of country, or every customer when
// country is blank. Cache errors are logged and fall through to the store.
func (s *CustomerService) ListByCountry(ctx context.Context, country string) ([]model.Customer, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, country)
		if err != nil {
			log.Warn().Err(err).Str("country", country).Msg("customer cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	if s.CustomerRepo == nil {
		return nil, ErrNoStore
	}
	customers, err := s.CustomerRepo.ListByCountry(ctx, country)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, country, customers); err != nil {
			log.Warn().Err(err).Str("country", country).Msg("failed to cache customers")
		}
	}
	return customers, nil
}

// GetByID returns nil, nil when the customer does not exist.
func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if s.CustomerRepo == nil {
		return nil, ErrNoStore
	}
	return s.CustomerRepo.GetByID(ctx, id)
}
