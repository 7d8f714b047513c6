// internal/controller/import_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/unclebandit/customer-bootstrap/internal/config"
	"github.com/unclebandit/customer-bootstrap/internal/middleware"
	"github.com/unclebandit/customer-bootstrap/internal/model"
	"github.com/unclebandit/customer-bootstrap/internal/queue"
)

// ImportController queues imports of the configured CSV source.
type ImportController struct {
	Queue    queue.Queue
	Defaults config.IngestConfig
}

// CreateImport queues an import job. The source path always comes from
// configuration, never from the request.
func (c *ImportController) CreateImport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Country  *string `json:"country"`
		MaxCount *int    `json:"max_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	job := model.ImportJob{
		ID:          uuid.NewString(),
		Country:     c.Defaults.Country,
		MaxCount:    c.Defaults.MaxCount,
		RequestedAt: time.Now(),
	}
	if body.Country != nil {
		job.Country = *body.Country
	}
	if body.MaxCount != nil {
		if *body.MaxCount < 0 {
			http.Error(w, "max_count must not be negative", http.StatusBadRequest)
			return
		}
		job.MaxCount = *body.MaxCount
	}

	if err := c.Queue.Publish(queue.TopicImports, job); err != nil {
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Msg("failed to queue import")
		http.Error(w, "failed to queue import", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id":    job.ID,
		"status":    "queued",
		"country":   job.Country,
		"max_count": job.MaxCount,
	})
}
