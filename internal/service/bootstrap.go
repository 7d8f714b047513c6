// internal/service/bootstrap.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// Bootstrap runs the default import once when the server starts.
type Bootstrap struct {
	Importer Importer
	Config   config.Config
}

// DefaultJob is the import described by the ingest configuration.
func DefaultJob(cfg config.IngestConfig) model.ImportJob {
	return model.ImportJob{
		ID:          uuid.NewString(),
		Country:     cfg.Country,
		MaxCount:    cfg.MaxCount,
		RequestedAt: time.Now(),
	}
}

// Run imports the default job and logs the outcome. A failed import is
// logged and yields nil so startup can continue.
func (b *Bootstrap) Run(ctx context.Context) []model.Customer {
	log.Info().Str("path", b.Config.Ingest.CSVPath).Msg("bootstrapping customers")

	job := DefaultJob(b.Config.Ingest)
	result, err := b.Importer.Import(ctx, job)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("bootstrap import failed")
	} else {
		log.Info().
			Str("job_id", job.ID).
			Str("country", job.Country).
			Int("count", len(result.Customers)).
			Interface("customers", result.Customers).
			Msg("bootstrap import finished")
	}

	log.Info().Bool("api_key_set", b.Config.APIKey != "").Msg("api key status")

	if err != nil {
		return nil
	}
	return result.Customers
}
