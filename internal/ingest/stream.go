package ingest

import (
	"io"
	"iter"

	appErrors "github.com/unclebandit/customer-bootstrap/internal/errors"
	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// Records returns a lazy sequence of the customers in r: data rows are read,
// bounded by opts.MaxCount, checked for arity, filtered and mapped, one at a
// time. The sequence stops after the first error it yields. It reads r
// directly, so it can only be ranged over once.
func Records(r io.Reader, opts Options) iter.Seq2[model.Customer, error] {
	return mapSeq(
		filter(
			wellFormed(take(rows(r), opts.MaxCount), opts),
			opts.keep,
		),
		MapRecord,
	)
}

// Collect drains seq. It returns the first error and no customers if the
// sequence fails.
func Collect(seq iter.Seq2[model.Customer, error]) ([]model.Customer, error) {
	customers := []model.Customer{}
	for c, err := range seq {
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

type row struct {
	fields []string
	line   int
}

// rows yields every record after the header, along with CSV syntax errors.
// It stops after a read failure.
func rows(r io.Reader) iter.Seq2[row, error] {
	return func(yield func(row, error) bool) {
		lr := newReader(r)
		if err := skipHeader(lr); err != nil {
			if err != io.EOF {
				yield(row{}, err)
			}
			return
		}

		for {
			fields, line, err := next(lr)
			if err == io.EOF {
				return
			}
			if !yield(row{fields: fields, line: line}, err) || terminal(err) {
				return
			}
		}
	}
}

// take stops seq after n items, errors included. n <= 0 means no bound.
func take[T any](seq iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T, error) bool) {
		taken := 0
		for v, err := range seq {
			if !yield(v, err) {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}

// wellFormed turns short rows into errors and applies the malformed-row
// policy. Only errors that survive the policy are passed on, and the first
// one ends the sequence.
func wellFormed(seq iter.Seq2[row, error], opts Options) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for rw, err := range seq {
			if err == nil && len(rw.fields) < MinFields {
				err = appErrors.NewShortRow(rw.line, len(rw.fields), MinFields)
			}
			if err != nil {
				if bad, ok := asMalformed(err); ok && opts.skip(bad) {
					continue
				}
				yield(nil, err)
				return
			}
			if !yield(rw.fields, nil) {
				return
			}
		}
	}
}

func filter[T any](seq iter.Seq2[T, error], keep func(T) bool) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v, err := range seq {
			if err == nil && !keep(v) {
				continue
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

func mapSeq[T, U any](seq iter.Seq2[T, error], fn func(T) U) iter.Seq2[U, error] {
	return func(yield func(U, error) bool) {
		for v, err := range seq {
			var u U
			if err == nil {
				u = fn(v)
			}
			if !yield(u, err) {
				return
			}
		}
	}
}
