package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// Worker processes queued import jobs
type Worker struct {
	Importer Importer
}

// Constructor
func NewWorker(importer Importer) *Worker {
	return &Worker{Importer: importer}
}

// Handle runs one job. Malformed sources are not retried; any other failure
// is returned so the queue retries the job.
func (w *Worker) Handle(ctx context.Context, job model.ImportJob) error {
	log.Info().Str("job_id", job.ID).Str("country", job.Country).Int("max_count", job.MaxCount).Msg("processing import job")

	result, err := w.Importer.Import(ctx, job)
	if err != nil {
		var bad *appErrors.ErrMalformedRow
		if errors.As(err, &bad) {
			log.Error().Err(err).Str("job_id", job.ID).Msg("import job rejected")
			return nil // no retry
		}
		return err
	}

	log.Info().
		Str("job_id", job.ID).
		Int("count", len(result.Customers)).
		Int("stored", result.Stored).
		Bool("cached", result.Cached).
		Msg("import job finished")
	return nil
}
