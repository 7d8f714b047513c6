package ingest

import (
	"io"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// Ingest reads customers from r with an explicit loop, stopping as soon as
// opts.MaxCount data rows were read. The result is never nil on success.
func Ingest(r io.Reader, opts Options) ([]model.Customer, error) {
	lr := newReader(r)
	customers := []model.Customer{}

	if err := skipHeader(lr); err != nil {
		if err == io.EOF {
			return customers, nil
		}
		return nil, err
	}

	for read := 0; opts.MaxCount <= 0 || read < opts.MaxCount; read++ {
		fields, line, err := next(lr)
		if err == io.EOF {
			break
		}
		if err != nil {
			if bad, ok := asMalformed(err); ok && opts.skip(bad) {
				continue
			}
			return nil, err
		}

		if len(fields) < MinFields {
			bad := appErrors.NewShortRow(line, len(fields), MinFields)
			if opts.skip(bad) {
				continue
			}
			return nil, bad
		}

		if !opts.keep(fields) {
			continue
		}
		customers = append(customers, MapRecord(fields))
	}

	return customers, nil
}
