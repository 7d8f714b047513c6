package ingest

import (
	"strings"

	"github.com/unclebandit/customer-bootstrap/internal/model"
)

// Column positions in a customer row. ColReserved is present in the source
// files but is not mapped to any attribute.
const (
	ColReserved = iota
	ColID
	ColFirstName
	ColLastName
	ColCompany
	ColCity
	ColCountry
)

// MinFields is the number of fields a row needs to be mapped.
const MinFields = ColCountry + 1

// MapRecord builds a customer from a row with at least MinFields fields.
// Values are copied as-is, including surrounding whitespace and casing.
func MapRecord(fields []string) model.Customer {
	return model.Customer{
		ID:        fields[ColID],
		FirstName: fields[ColFirstName],
		LastName:  fields[ColLastName],
		Company:   fields[ColCompany],
		City:      fields[ColCity],
		Country:   fields[ColCountry],
	}
}

// Predicate decides whether a raw row is kept.
type Predicate func(fields []string) bool

// CountryIs keeps rows whose country column equals country, ignoring case
// and surrounding whitespace on both sides.
func CountryIs(country string) Predicate {
	want := strings.TrimSpace(country)
	return func(fields []string) bool {
		if len(fields) <= ColCountry {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(fields[ColCountry]), want)
	}
}
