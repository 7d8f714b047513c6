package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

func TestWorker_Handle(t *testing.T) {
	importer := &MockImporter{result: &model.ImportResult{JobID: "job-1", Stored: 1}}
	w := NewWorker(importer)

	assert.NoError(t, w.Handle(context.Background(), model.ImportJob{ID: "job-1"}))
	assert.Len(t, importer.jobs, 1)
}

func TestWorker_Handle_MalformedIsNotRetried(t *testing.T) {
	w := NewWorker(&MockImporter{err: appErrors.NewShortRow(3, 2, 7)})

	assert.NoError(t, w.Handle(context.Background(), model.ImportJob{ID: "job-2"}))
}

func TestWorker_Handle_UnavailableIsRetried(t *testing.T) {
	cause := appErrors.NewSourceUnavailable("customers.csv", assert.AnError)
	w := NewWorker(&MockImporter{err: cause})

	err := w.Handle(context.Background(), model.ImportJob{ID: "job-3"})
	assert.ErrorIs(t, err, assert.AnError)
}
