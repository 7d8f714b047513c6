package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
)

// maxLineSize bounds a single physical line.
const maxLineSize = 1 << 20

// lineReader reads the source one physical line at a time. Each line is
// parsed as a CSV record on its own, so quoting never spans lines.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

// next reads one record and its line number. Blank and whitespace-only lines
// are skipped. It returns io.EOF at the end of the source, an
// *ErrMalformedRow for CSV syntax errors and an *ErrSourceUnavailable for
// read failures.
func next(lr *lineReader) ([]string, int, error) {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields, err := parseLine(text)
		if err != nil {
			return nil, lr.line, appErrors.NewUnparsableRow(lr.line, err)
		}
		return fields, lr.line, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, 0, appErrors.NewSourceUnavailable("", err)
	}
	return nil, 0, io.EOF
}

// parseLine splits one line into fields with RFC 4180 quoting.
func parseLine(text string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1

	fields, err := cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.Err
		}
		return nil, err
	}
	return fields, nil
}

// skipHeader discards the first record. A header with bad CSV syntax is
// discarded like any other header.
func skipHeader(lr *lineReader) error {
	_, _, err := next(lr)
	if err == io.EOF || terminal(err) {
		return err
	}
	return nil
}

func terminal(err error) bool {
	var unavailable *appErrors.ErrSourceUnavailable
	return errors.As(err, &unavailable)
}

// asMalformed returns the *ErrMalformedRow inside err, if any.
func asMalformed(err error) (*appErrors.ErrMalformedRow, bool) {
	var bad *appErrors.ErrMalformedRow
	ok := errors.As(err, &bad)
	return bad, ok
}
