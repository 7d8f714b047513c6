// internal/service/import_service.go
package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/cache"
	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
	"github.com/unclebandit/customer-bootstrap/internal/ingest"
	"github.com/unclebandit/customer-bootstrap/internal/model"
	"github.com/unclebandit/customer-bootstrap/internal/repository"
)

// Importer runs one import job.
type Importer interface {
	Import(ctx context.Context, job model.ImportJob) (*model.ImportResult, error)
}

// ImportService ingests the configured CSV file. CustomerRepo and Cache are
// optional; a nil value skips that step.
type ImportService struct {
	CSVPath      string
	Policy       ingest.MalformedRowPolicy
	CustomerRepo repository.CustomerRepositoryInterface
	Cache        cache.CustomerCache
}

func (s *ImportService) Import(ctx context.Context, job model.ImportJob) (*model.ImportResult, error) {
	opts := ingest.Options{
		MaxCount:    job.MaxCount,
		OnMalformed: s.Policy,
		OnSkip: func(bad *appErrors.ErrMalformedRow) {
			log.Warn().Str("job_id", job.ID).Int("line", bad.Line).Err(bad).Msg("skipping malformed row")
		},
	}
	if strings.TrimSpace(job.Country) != "" {
		opts.Filter = ingest.CountryIs(job.Country)
	}

	customers, err := ingest.StreamFile(s.CSVPath, opts)
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{
		JobID:     job.ID,
		Customers: customers,
	}

	if s.CustomerRepo != nil {
		stored, err := s.CustomerRepo.SaveAll(ctx, customers)
		if err != nil {
			return nil, err
		}
		result.Stored = stored
	}

	// A bounded run only saw part of the source, so it would overwrite the
	// country's entry with a partial list.
	if s.Cache != nil && job.MaxCount <= 0 {
		if err := s.Cache.Put(ctx, job.Country, customers); err != nil {
			log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to cache import result")
		} else {
			result.Cached = true
		}
	}

	return result, nil
}
