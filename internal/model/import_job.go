// internal/model/import_job.go
package model

import "time"

// ImportJob asks a worker to ingest the configured CSV source.
type ImportJob struct {
	ID          string    `json:"id"`
	Country     string    `json:"country"`   // empty means no country filter
	MaxCount    int       `json:"max_count"` // 0 means unbounded
	RequestedAt time.Time `json:"requested_at"`
}

// ImportResult is what a single ImportJob produced.
type ImportResult struct {
	JobID     string     `json:"job_id"`
	Customers []Customer `json:"customers"`
	Stored    int        `json:"stored"`
	Cached    bool       `json:"cached"`
}
