package ingest

import (
	"errors"
	"os"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// IngestFile runs Ingest over the file at path.
func IngestFile(path string, opts Options) ([]model.Customer, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	customers, err := Ingest(f, opts)
	return customers, withPath(err, path)
}

// StreamFile drains Records over the file at path. The file stays open only
// while the sequence is consumed.
func StreamFile(path string, opts Options) ([]model.Customer, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	customers, err := Collect(Records(f, opts))
	return customers, withPath(err, path)
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErrors.NewSourceUnavailable(path, err)
	}
	return f, nil
}

func withPath(err error, path string) error {
	var unavailable *appErrors.ErrSourceUnavailable
	if errors.As(err, &unavailable) && unavailable.Path == "" {
		unavailable.Path = path
	}
	return err
}
