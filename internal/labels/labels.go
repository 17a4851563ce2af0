// Package labels precomputes the JSON key string for every row or
// column label of a table or vector, so inner iterations can look it
// up by index instead of re-encoding it on every access.
//
// Unlike spec.md's original design, the cache stores plain (unquoted)
// strings rather than fully punctuated "quote+colon" byte spans: the
// writer owns all punctuation (see jsonwriter's doc comment and
// DESIGN.md's Open Question resolution), so there is no
// quote-detection branch and no "trim two characters" ambiguity to
// resolve.
package labels

import (
	"fmt"

	"tabjson/internal/jsonerr"
)

// Cache holds one precomputed key string per label.
type Cache struct {
	keys []string
}

// Build precomputes a Cache from an arbitrary label slice. expected is
// the data shape's corresponding axis length; fewer labels than that
// is spec.md §4.5's "Label array sizes do not match corresponding data
// shape" failure, while extra labels are accepted.
func Build(rawLabels []string, expected int) (*Cache, error) {
	if len(rawLabels) < expected {
		return nil, fmt.Errorf("%w: label array sizes do not match corresponding data shape", jsonerr.ErrShape)
	}
	keys := make([]string, len(rawLabels))
	copy(keys, rawLabels)
	return &Cache{keys: keys}, nil
}

// BuildFromValues precomputes a Cache from arbitrary (non-string)
// label values (numeric index labels are the common case, e.g. a
// table's default integer row index). render converts one label
// value to its key string; callers route datetime and other
// non-trivial values through it the same way the dispatcher would
// render an equivalent scalar, so a label and a value built from the
// same underlying data never disagree (spec.md §4.5: "routing
// datetime and numeric labels through the numeric-primitive staging
// path"). Simple values (ints, strings) can use Stringify.
func BuildFromValues(values []any, expected int, render func(any) (string, error)) (*Cache, error) {
	if len(values) < expected {
		return nil, fmt.Errorf("%w: label array sizes do not match corresponding data shape", jsonerr.ErrShape)
	}
	keys := make([]string, len(values))
	for i, v := range values {
		s, err := render(v)
		if err != nil {
			return nil, err
		}
		keys[i] = s
	}
	return &Cache{keys: keys}, nil
}

// Stringify is the default render function for label values that need
// no special-cased rendering: numbers and strings print the same way
// under fmt.Sprint as they would through the scalar encode path.
func Stringify(v any) (string, error) {
	return fmt.Sprint(v), nil
}

// At returns the precomputed key for label index i.
func (c *Cache) At(i int) string {
	if c == nil || i < 0 || i >= len(c.keys) {
		return ""
	}
	return c.keys[i]
}

// Len returns the number of cached labels.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}
