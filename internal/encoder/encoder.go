// Package encoder ties the type dispatcher, the iterator drivers, and
// the JSON token writer into the recursive encode loop spec.md's
// top-level entry point drives.
package encoder

import (
	"fmt"

	"tabjson/internal/datetime"
	"tabjson/internal/dispatch"
	"tabjson/internal/jsonerr"
	"tabjson/internal/jsonwriter"
	"tabjson/internal/orient"
)

// Dictable re-exports dispatch.Dictable under the name spec.md's
// design notes use for the "toDict" fallback capability.
type Dictable = dispatch.Dictable

// DefaultHandler re-exports dispatch.DefaultHandler.
type DefaultHandler = dispatch.DefaultHandler

// Options is the fully-resolved, Go-shaped form of spec.md §6's
// top-level option table.
type Options struct {
	EnsureASCII     bool
	DoublePrecision int
	EncodeHTMLChars bool
	Orient          orient.Orientation
	DateUnit        datetime.Unit
	ISODates        bool
	DefaultHandler  DefaultHandler
}

// maxDepth bounds recursion on cyclic or pathologically deep input,
// standing in for the writer vtable's "recursion-max" field from
// spec.md §6 (the external collaborator's own stack-depth guard).
const maxDepth = 10000

// Marshal renders v as UTF-8 JSON text per opts. No partial output is
// ever returned: any error aborts before the byte slice is handed
// back (spec.md §8's "no partial output" invariant).
func Marshal(v any, opts Options) ([]byte, error) {
	if opts.DoublePrecision < 0 || opts.DoublePrecision > 17 {
		return nil, fmt.Errorf("%w: double_precision must be between 0 and 17, got %d", jsonerr.ErrOption, opts.DoublePrecision)
	}

	w := jsonwriter.New(opts.EnsureASCII, opts.EncodeHTMLChars, opts.DoublePrecision)
	st := &dispatch.State{
		Orient:         opts.Orient,
		DateUnit:       opts.DateUnit,
		ISODates:       opts.ISODates,
		DefaultHandler: opts.DefaultHandler,
	}
	if err := encodeValue(w, v, st, 0); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func encodeValue(w *jsonwriter.Writer, v any, st *dispatch.State, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: recursion depth exceeded %d", jsonerr.ErrResource, maxDepth)
	}

	res, err := dispatch.Classify(v, st)
	if err != nil {
		return err
	}

	switch res.Shape {
	case dispatch.ShapeNull:
		w.Null()
	case dispatch.ShapeBool:
		w.Bool(res.Bool)
	case dispatch.ShapeInt:
		w.Int(res.Int)
	case dispatch.ShapeFloat:
		w.Float(res.Float)
	case dispatch.ShapeString:
		w.Str(res.Str)
	case dispatch.ShapeRawNumber:
		w.RawNumber(res.Str)
	case dispatch.ShapeArray:
		return encodeContainer(w, res.Driver, st, depth, true)
	case dispatch.ShapeObject:
		return encodeContainer(w, res.Driver, st, depth, false)
	default:
		return fmt.Errorf("%w: could not classify value of type %T", jsonerr.ErrType, v)
	}
	return nil
}

// encodeContainer drives one Driver to completion, recursing into
// every item it yields. The driver's End is deferred so that every
// exit path — normal completion or a mid-iteration error from a
// nested value — releases its resources deterministically (spec.md
// §5's resource discipline).
func encodeContainer(w *jsonwriter.Writer, drv interface {
	Next() bool
	Value() any
	Name() string
	End()
}, st *dispatch.State, depth int, isArray bool) error {
	if isArray {
		w.BeginArray()
	} else {
		w.BeginObject()
	}
	defer drv.End()

	for drv.Next() {
		if isArray {
			w.Elem()
		} else {
			w.Key(drv.Name())
		}
		if err := encodeValue(w, drv.Value(), st, depth+1); err != nil {
			return err
		}
	}

	if isArray {
		w.EndArray()
	} else {
		w.EndObject()
	}
	return nil
}
