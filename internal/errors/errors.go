// internal/errors/errors.go
package appErrors

import "fmt"

// ErrSourceUnavailable means the CSV source could not be opened or read.
type ErrSourceUnavailable struct {
	Path string
	Err  error
}

func (e *ErrSourceUnavailable) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("source unavailable: %v", e.Err)
	}
	return fmt.Sprintf("source %s unavailable: %v", e.Path, e.Err)
}

func (e *ErrSourceUnavailable) Unwrap() error { return e.Err }

// NewSourceUnavailable wraps err for the source at path. path may be empty
// when the source is a plain reader.
func NewSourceUnavailable(path string, err error) error {
	return &ErrSourceUnavailable{Path: path, Err: err}
}

// ErrMalformedRow reports a data row that cannot be mapped to a customer:
// either fewer fields than the mapping needs, or a CSV syntax error (Err).
type ErrMalformedRow struct {
	Line   int
	Fields int
	Want   int
	Err    error
}

func (e *ErrMalformedRow) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed row at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed row at line %d: got %d fields, want at least %d", e.Line, e.Fields, e.Want)
}

func (e *ErrMalformedRow) Unwrap() error { return e.Err }

// Helper constructors
func NewShortRow(line, fields, want int) *ErrMalformedRow {
	return &ErrMalformedRow{Line: line, Fields: fields, Want: want}
}

func NewUnparsableRow(line int, err error) *ErrMalformedRow {
	return &ErrMalformedRow{Line: line, Err: err}
}
