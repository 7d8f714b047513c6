package appErrors_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
)

func TestSourceUnavailable(t *testing.T) {
	err := appErrors.NewSourceUnavailable("data/customers.csv", fs.ErrNotExist)

	assert.EqualError(t, err, "source data/customers.csv unavailable: file does not exist")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var target *appErrors.ErrSourceUnavailable
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "data/customers.csv", target.Path)
}

func TestSourceUnavailable_NoPath(t *testing.T) {
	err := appErrors.NewSourceUnavailable("", errors.New("boom"))
	assert.EqualError(t, err, "source unavailable: boom")
}

func TestMalformedRow(t *testing.T) {
	short := appErrors.NewShortRow(4, 3, 7)
	assert.EqualError(t, short, "malformed row at line 4: got 3 fields, want at least 7")
	assert.Nil(t, errors.Unwrap(short))

	cause := errors.New(`extraneous " in field`)
	bad := appErrors.NewUnparsableRow(9, cause)
	assert.EqualError(t, bad, `malformed row at line 9: extraneous " in field`)
	assert.ErrorIs(t, bad, cause)
}
