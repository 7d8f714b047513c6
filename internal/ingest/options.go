package ingest

import (
	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
)

// MalformedRowPolicy selects what happens to rows that cannot be mapped.
type MalformedRowPolicy int

const (
	// FailFast aborts the whole call on the first malformed row.
	FailFast MalformedRowPolicy = iota
	// SkipMalformed drops malformed rows and keeps reading.
	SkipMalformed
)

func (p MalformedRowPolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case SkipMalformed:
		return "skip"
	default:
		return "unknown"
	}
}

// Options configures a single ingestion call. The zero value keeps every
// row, reads the whole source and fails on the first malformed row.
type Options struct {
	// Filter is applied to every well-formed row. Nil keeps all rows.
	Filter Predicate

	// MaxCount bounds the number of data rows read, whether or not they
	// pass the filter. Zero or less means no bound.
	MaxCount int

	OnMalformed MalformedRowPolicy

	// OnSkip is called for each row dropped under SkipMalformed.
	OnSkip func(*appErrors.ErrMalformedRow)
}

func (o Options) keep(fields []string) bool {
	return o.Filter == nil || o.Filter(fields)
}

// skip reports whether bad should be dropped rather than returned.
func (o Options) skip(bad *appErrors.ErrMalformedRow) bool {
	if o.OnMalformed != SkipMalformed {
		return false
	}
	if o.OnSkip != nil {
		o.OnSkip(bad)
	}
	return true
}
