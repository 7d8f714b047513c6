// Package ingest turns a customer CSV source into a filtered, bounded list of
// model.Customer values.
//
// The source is read one physical line at a time. Blank and whitespace-only
// lines are skipped and not counted. Quoted fields may contain the delimiter
// but never a line break; a line with broken quoting is a malformed row.
//
// The first line of every source is a header and is always discarded. Each
// remaining record is mapped by position (see the Col constants), never by
// header name. Two equivalent forms are offered: Ingest, an explicit loop
// that stops early, and Records, a lazy pipeline that Collect drains. Both
// return the same customers and the same error for the same input.
//
// Rows with fewer than MinFields fields are handled according to
// Options.OnMalformed: FailFast (the default) aborts with an
// *appErrors.ErrMalformedRow, SkipMalformed drops the row and keeps going.
// Read failures always abort with an *appErrors.ErrSourceUnavailable, and an
// aborted call never returns partial results.
package ingest
