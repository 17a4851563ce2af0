// Package dispatch is the Type Dispatcher (spec.md §4.1): given a
// source value and the live encoder state, it picks a JSON shape plus
// either a primitive payload or an iterdrv.Driver to walk. Dispatch
// order follows spec.md exactly where Go's type system allows a
// direct analogue; where Go has no "tuple vs. set vs. mapping"
// distinction the way the source runtime does, domain interfaces
// (table.Table, table.Vector, Dictable, iterdrv.Iterable) are checked
// before the generic reflect-based struct/slice/map rules, since Go
// resolves interface satisfaction structurally rather than by a
// mutually exclusive type tag — see DESIGN.md's Open Question
// resolution.
package dispatch

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"tabjson/internal/coerce"
	"tabjson/internal/datetime"
	"tabjson/internal/iterdrv"
	"tabjson/internal/jsonerr"
	"tabjson/internal/labels"
	"tabjson/internal/orient"
	"tabjson/internal/table"
)

// Shape tags the JSON form a classified value will take.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeNull
	ShapeBool
	ShapeInt
	ShapeFloat
	ShapeString
	ShapeRawNumber // a pre-formatted numeric literal, e.g. an epoch timestamp
	ShapeArray
	ShapeObject
)

// Result is what Classify publishes for one value: exactly one of the
// scalar fields or Driver is meaningful, selected by Shape.
type Result struct {
	Shape  Shape
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	Driver iterdrv.Driver
}

// Dictable is implemented by values that know how to render themselves
// as a JSON object via an explicit conversion method (spec.md §4.1
// rule 19, the "toDict" fallback). A failing ToMap encodes as JSON
// null, per spec.md.
type Dictable interface {
	ToMap() (map[string]any, error)
}

// DefaultHandler converts a value the dispatcher could not otherwise
// classify. Its result is classified in place of the original value;
// an error or a nil result is a Handler-class failure (spec.md §7).
type DefaultHandler func(any) (any, error)

// State is the per-call context threaded through every Classify call.
// Orient is mutated in place by the table driver's scoped forcing
// (spec.md §4.4) for the lifetime of a table's nested iteration, and
// restored by the driver's End.
type State struct {
	Orient         orient.Orientation
	DateUnit       datetime.Unit
	ISODates       bool
	DefaultHandler DefaultHandler
}

// Classify implements the Type Dispatcher.
func Classify(v any, st *State) (Result, error) {
	if v == nil {
		return Result{Shape: ShapeNull}, nil
	}

	switch x := v.(type) {
	case bool:
		return Result{Shape: ShapeBool, Bool: x}, nil
	case int:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case int8:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case int16:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case int32:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case int64:
		return Result{Shape: ShapeInt, Int: x}, nil
	case uint:
		n, ok := coerce.Uint64ToInt64(uint64(x))
		if !ok {
			return Result{}, fmt.Errorf("%w: integer too large for int64", jsonerr.ErrOverflow)
		}
		return Result{Shape: ShapeInt, Int: n}, nil
	case uint8:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case uint16:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case uint32:
		return Result{Shape: ShapeInt, Int: int64(x)}, nil
	case uint64:
		n, ok := coerce.Uint64ToInt64(x)
		if !ok {
			return Result{}, fmt.Errorf("%w: integer too large for int64", jsonerr.ErrOverflow)
		}
		return Result{Shape: ShapeInt, Int: n}, nil
	case float32:
		f, ok := coerce.FiniteFloat(float64(x))
		if !ok {
			return Result{Shape: ShapeNull}, nil
		}
		return Result{Shape: ShapeFloat, Float: f}, nil
	case float64:
		f, ok := coerce.FiniteFloat(x)
		if !ok {
			return Result{Shape: ShapeNull}, nil
		}
		return Result{Shape: ShapeFloat, Float: f}, nil
	case []byte:
		return Result{Shape: ShapeString, Str: coerce.Bytes(x)}, nil
	case string:
		s, _ := coerce.UTF8(x)
		return Result{Shape: ShapeString, Str: s}, nil
	case *big.Float:
		f, _ := x.Float64()
		return Result{Shape: ShapeFloat, Float: f}, nil
	case *big.Rat:
		f, _ := x.Float64()
		return Result{Shape: ShapeFloat, Float: f}, nil
	case datetime.NullTime:
		if !x.Valid {
			return Result{Shape: ShapeNull}, nil
		}
		return st.encodeDate(x.Time)
	case time.Time:
		return st.encodeDate(x)
	case datetime.ClockTime:
		return Result{Shape: ShapeString, Str: x.Format()}, nil
	case time.Duration:
		return Result{Shape: ShapeRawNumber, Str: strconv.FormatInt(datetime.DurationNanos(x, st.DateUnit), 10)}, nil

	case iterdrv.NDArrayStrideChild:
		return classifyNDArrayChild(x)

	// Vector is checked before IndexObj: every Vector also has the
	// Name/Len/At methods that make up IndexObj.
	case table.Vector:
		return classifyVector(x, st)
	case table.IndexObj:
		return classifyIndex(x, st), nil
	case table.NDArray:
		return classifyNDArrayRoot(x)
	case table.Table:
		return classifyTable(x, st)

	case Dictable:
		m, err := x.ToMap()
		if err != nil {
			return Result{Shape: ShapeNull}, nil
		}
		return classifyMap(m)

	case iterdrv.Iterable:
		return Result{Shape: ShapeArray, Driver: iterdrv.NewIterable(x)}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		drv, err := iterdrv.NewMapping(v)
		if err != nil {
			return classifyFallback(v, st)
		}
		return Result{Shape: ShapeObject, Driver: drv}, nil
	case reflect.Slice, reflect.Array:
		return Result{Shape: ShapeArray, Driver: iterdrv.NewSlice(v)}, nil
	case reflect.Struct:
		return Result{Shape: ShapeArray, Driver: iterdrv.NewTuple(v)}, nil
	case reflect.Ptr:
		if rv.IsNil() {
			return Result{Shape: ShapeNull}, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			if st.DefaultHandler != nil {
				return classifyFallback(v, st)
			}
			return Result{Shape: ShapeObject, Driver: iterdrv.NewAttributeDir(rv.Elem())}, nil
		}
		return Classify(rv.Elem().Interface(), st)
	}

	return classifyFallback(v, st)
}

func (st *State) encodeDate(t time.Time) (Result, error) {
	if st.ISODates {
		s, err := datetime.ISO8601(t, st.DateUnit)
		if err != nil {
			return Result{}, err
		}
		return Result{Shape: ShapeString, Str: s}, nil
	}
	return Result{Shape: ShapeRawNumber, Str: strconv.FormatInt(datetime.EpochInt(t, st.DateUnit), 10)}, nil
}

// classifyFallback is spec.md §4.1 rule 20: route through the default
// handler if one is configured, else fall back to reflecting over
// exported attributes.
func classifyFallback(v any, st *State) (Result, error) {
	if st.DefaultHandler != nil {
		out, err := st.DefaultHandler(v)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", jsonerr.ErrHandler, err)
		}
		if out == nil {
			return Result{}, fmt.Errorf("%w: default handler returned nil for %T", jsonerr.ErrHandler, v)
		}
		return Classify(out, st)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Result{Shape: ShapeNull}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Result{}, fmt.Errorf("%w: cannot encode value of type %T", jsonerr.ErrType, v)
	}
	return Result{Shape: ShapeObject, Driver: iterdrv.NewAttributeDir(rv)}, nil
}

func classifyMap(m map[string]any) (Result, error) {
	drv, err := iterdrv.NewMapping(m)
	if err != nil {
		return Result{}, err
	}
	return Result{Shape: ShapeObject, Driver: drv}, nil
}

func classifyIndex(idx table.IndexObj, st *State) Result {
	if st.Orient == orient.Split {
		return Result{Shape: ShapeObject, Driver: iterdrv.NewIndexSplit(idx)}
	}
	return Result{Shape: ShapeArray, Driver: iterdrv.NewIndexArray(idx)}
}

func classifyVector(v table.Vector, st *State) (Result, error) {
	switch st.Orient {
	case orient.Split:
		return Result{Shape: ShapeObject, Driver: iterdrv.NewVectorSplit(v)}, nil
	case orient.Index, orient.Columns:
		cache, err := indexLabelCache(v.Index(), v.Len(), st)
		if err != nil {
			return Result{}, err
		}
		return Result{Shape: ShapeObject, Driver: iterdrv.NewVectorObject(v, cache)}, nil
	default:
		return Result{Shape: ShapeArray, Driver: iterdrv.NewVectorArray(v)}, nil
	}
}

// indexLabelCache builds a label cache from an index's values,
// rendering each one the same way Classify would render it as a
// scalar, so a datetime (or any other non-trivial) index value never
// disagrees between its use as a key and its use as a value.
func indexLabelCache(idx table.IndexObj, expected int, st *State) (*labels.Cache, error) {
	vals := make([]any, idx.Len())
	for i := range vals {
		vals[i] = idx.At(i)
	}
	return labels.BuildFromValues(vals, expected, labelRender(st))
}

// labelRender returns the render function indexLabelCache threads
// into labels.BuildFromValues: datetime values go through the same
// epoch/ISO-8601 rendering Classify uses for a scalar time.Time or
// datetime.NullTime, everything else falls back to labels.Stringify.
func labelRender(st *State) func(any) (string, error) {
	return func(v any) (string, error) {
		switch x := v.(type) {
		case datetime.NullTime:
			if !x.Valid {
				return "NaT", nil
			}
			return dateLabelString(x.Time, st)
		case time.Time:
			return dateLabelString(x, st)
		default:
			return labels.Stringify(v)
		}
	}
}

func dateLabelString(t time.Time, st *State) (string, error) {
	if st.ISODates {
		return datetime.ISO8601(t, st.DateUnit)
	}
	return strconv.FormatInt(datetime.EpochInt(t, st.DateUnit), 10), nil
}

func classifyTable(t table.Table, st *State) (Result, error) {
	if st.Orient == orient.Split {
		return Result{Shape: ShapeObject, Driver: iterdrv.NewTableSplit(t, &st.Orient)}, nil
	}

	byColumn := st.Orient == orient.Columns
	shape := ShapeObject
	if st.Orient == orient.Records || st.Orient == orient.Values {
		shape = ShapeArray
	}

	var cache *labels.Cache
	var err error
	switch st.Orient {
	case orient.Index:
		cache, err = indexLabelCache(t.Index(), t.NumRows(), st)
	case orient.Columns:
		cache, err = labels.Build(t.Columns(), len(t.Columns()))
	}
	if err != nil {
		return Result{}, err
	}

	drv := iterdrv.NewTable(t, &st.Orient, byColumn, cache)
	return Result{Shape: shape, Driver: drv}, nil
}

func classifyNDArrayRoot(arr table.NDArray) (Result, error) {
	if len(arr.Shape()) == 0 {
		return Result{}, fmt.Errorf("%w: 0-dimensional array not supported", jsonerr.ErrType)
	}
	drv := iterdrv.NewNDArray(arr, false)
	shape := ShapeArray
	if drv.Object() {
		shape = ShapeObject
	}
	return Result{Shape: shape, Driver: drv}, nil
}

func classifyNDArrayChild(c iterdrv.NDArrayStrideChild) (Result, error) {
	drv := iterdrv.ReuseNDArray(c.Arr, c.S)
	shape := ShapeArray
	if drv.Object() {
		shape = ShapeObject
	}
	return Result{Shape: shape, Driver: drv}, nil
}
