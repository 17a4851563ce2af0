// Package tabjson is a streaming JSON encoder for a tabular-data
// ecosystem: it renders tables, vectors, index objects, n-dimensional
// typed numeric arrays, scalars, date/time values, and generic
// containers as UTF-8 JSON, with a selectable table/vector
// orientation. See internal/encoder for the recursive encode loop and
// internal/dispatch for the type-classification rules this package
// configures.
package tabjson

import (
	"tabjson/internal/datetime"
	"tabjson/internal/encoder"
	"tabjson/internal/orient"
)

// Option configures a Marshal call. An Option that rejects its
// argument (an unknown orient or date_unit string) returns an
// Option-class error, which Marshal surfaces without encoding
// anything (spec.md §7: "option errors reject before any output").
type Option func(*config) error

type config struct {
	ensureASCII     bool
	doublePrecision int
	encodeHTMLChars bool
	orient          orient.Orientation
	dateUnit        datetime.Unit
	isoDates        bool
	defaultHandler  func(any) (any, error)
}

// WithOrient selects a table/vector orientation: "records", "index",
// "split", "values", or "columns" (the default).
func WithOrient(o string) Option {
	return func(c *config) error {
		parsed, err := orient.Parse(o)
		if err != nil {
			return err
		}
		c.orient = parsed
		return nil
	}
}

// WithDateUnit selects the epoch/ISO-8601 precision: "s", "ms"
// (the default), "us", or "ns".
func WithDateUnit(u string) Option {
	return func(c *config) error {
		parsed, err := datetime.ParseUnit(u)
		if err != nil {
			return err
		}
		c.dateUnit = parsed
		return nil
	}
}

// WithISODates selects ISO-8601 string rendering for date/time values
// instead of the default epoch integer.
func WithISODates(b bool) Option {
	return func(c *config) error { c.isoDates = b; return nil }
}

// WithEnsureASCII forces non-ASCII string bytes to be \u-escaped.
func WithEnsureASCII(b bool) Option {
	return func(c *config) error { c.ensureASCII = b; return nil }
}

// WithDoublePrecision sets the number of digits after the decimal
// point for floating-point output (0..17).
func WithDoublePrecision(n int) Option {
	return func(c *config) error { c.doublePrecision = n; return nil }
}

// WithEncodeHTMLChars escapes '<', '>', and '&' in string output.
func WithEncodeHTMLChars(b bool) Option {
	return func(c *config) error { c.encodeHTMLChars = b; return nil }
}

// WithDefaultHandler installs a fallback invoked for values the
// dispatcher cannot otherwise classify. Its result is encoded in
// place of the original value.
func WithDefaultHandler(h func(any) (any, error)) Option {
	return func(c *config) error { c.defaultHandler = h; return nil }
}

func newConfig(opts ...Option) (config, error) {
	c := config{
		doublePrecision: 10,
		dateUnit:        datetime.UnitMillis,
		orient:          orient.Columns,
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return config{}, err
		}
	}
	return c, nil
}

// Marshal renders v as UTF-8 JSON text per opts. No partial output is
// ever returned for a failed call.
func Marshal(v any, opts ...Option) ([]byte, error) {
	c, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return encoder.Marshal(v, encoder.Options{
		EnsureASCII:     c.ensureASCII,
		DoublePrecision: c.doublePrecision,
		EncodeHTMLChars: c.encodeHTMLChars,
		Orient:          c.orient,
		DateUnit:        c.dateUnit,
		ISODates:        c.isoDates,
		DefaultHandler:  c.defaultHandler,
	})
}

// MarshalToString is Marshal with a string result.
func MarshalToString(v any, opts ...Option) (string, error) {
	b, err := Marshal(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
