// Package iterdrv is the Iterator Drivers layer: one small walker per
// container shape (slice, struct-as-tuple, map, external iterable,
// reflected attribute bag, plus the table-shaped drivers in
// tabular.go), each exposing the same begin/next/get-value/get-name
// protocol spec.md assigns to the writer's container traversal.
package iterdrv

import (
	"fmt"
	"reflect"
	"sort"

	"tabjson/internal/jsonerr"
)

// Driver is the common shape every container walker implements. Next
// advances to the next item and reports whether one was produced;
// Value and Name read the item most recently produced by Next (Name
// is meaningful only when the dispatcher classified the value as a
// JSON object); End releases resources. Scalars never use a Driver —
// the type dispatcher routes them to a coercer instead.
type Driver interface {
	Next() bool
	Value() any
	Name() string
	End()
}

// Iterable is the capability surface for "sets and unknown iterables"
// (spec.md §4.2): any type that can hand back one item at a time.
type Iterable interface {
	Next() (any, bool)
}

// IterableDriver adapts an Iterable into a Driver (array shape; Name
// is never meaningful).
type IterableDriver struct {
	it  Iterable
	cur any
}

// NewIterable wraps it.
func NewIterable(it Iterable) *IterableDriver {
	return &IterableDriver{it: it}
}

func (d *IterableDriver) Next() bool {
	v, ok := d.it.Next()
	if !ok {
		return false
	}
	d.cur = v
	return true
}
func (d *IterableDriver) Value() any  { return d.cur }
func (d *IterableDriver) Name() string { return "" }
func (d *IterableDriver) End()         {}

// SliceDriver walks a slice or array by reflection (spec.md's
// "Sequence" driver). Items are borrowed; Name is never meaningful.
type SliceDriver struct {
	rv  reflect.Value
	i   int
	cur any
}

// NewSlice builds a SliceDriver over v, which must be a slice or
// array.
func NewSlice(v any) *SliceDriver {
	return &SliceDriver{rv: reflect.ValueOf(v)}
}

func (d *SliceDriver) Next() bool {
	if d.i >= d.rv.Len() {
		return false
	}
	d.cur = d.rv.Index(d.i).Interface()
	d.i++
	return true
}
func (d *SliceDriver) Value() any  { return d.cur }
func (d *SliceDriver) Name() string { return "" }
func (d *SliceDriver) End()         {}

// TupleDriver walks the exported fields of a struct passed by value,
// in declaration order, as a positional array — this is the Go stand-in
// for spec.md's "Tuple" shape, since Go has no tuple type.
type TupleDriver struct {
	rv  reflect.Value
	t   reflect.Type
	i   int
	cur any
}

// NewTuple builds a TupleDriver over v, which must be a struct value.
func NewTuple(v any) *TupleDriver {
	rv := reflect.ValueOf(v)
	return &TupleDriver{rv: rv, t: rv.Type()}
}

func (d *TupleDriver) Next() bool {
	for d.i < d.t.NumField() {
		f := d.t.Field(d.i)
		fv := d.rv.Field(d.i)
		d.i++
		if f.PkgPath != "" { // unexported
			continue
		}
		d.cur = fv.Interface()
		return true
	}
	return false
}
func (d *TupleDriver) Value() any  { return d.cur }
func (d *TupleDriver) Name() string { return "" }
func (d *TupleDriver) End()         {}

// AttributeDriver reflects over the exported, non-func fields of a
// struct, skipping nothing else: this is spec.md's fallback
// Attribute-Dir driver, used only once no other classification rule
// (and no default handler) matched.
type AttributeDriver struct {
	rv      reflect.Value
	t       reflect.Type
	i       int
	curName string
	curVal  any
}

// NewAttributeDir builds an AttributeDriver over a struct value rv
// (already dereferenced, if rv came from a pointer).
func NewAttributeDir(rv reflect.Value) *AttributeDriver {
	return &AttributeDriver{rv: rv, t: rv.Type()}
}

func (d *AttributeDriver) Next() bool {
	for d.i < d.t.NumField() {
		f := d.t.Field(d.i)
		fv := d.rv.Field(d.i)
		d.i++
		if f.PkgPath != "" || fv.Kind() == reflect.Func {
			continue
		}
		d.curName = f.Name
		d.curVal = fv.Interface()
		return true
	}
	return false
}
func (d *AttributeDriver) Value() any  { return d.curVal }
func (d *AttributeDriver) Name() string { return d.curName }
func (d *AttributeDriver) End()         {}

// MappingDriver walks an arbitrary map by reflection. Names that are
// not already strings are coerced with fmt.Sprint (spec.md's "names
// that are not byte strings are coerced to UTF-8 bytes"). Keys are
// sorted for deterministic output (spec.md §8's determinism
// invariant), since Go map iteration order is randomized.
type MappingDriver struct {
	keys []string
	vals []any
	i    int
}

// NewMapping builds a MappingDriver over v, which must be a map.
func NewMapping(v any) (*MappingDriver, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: %T is not a map", jsonerr.ErrType, v)
	}
	mapKeys := rv.MapKeys()
	type pair struct {
		k string
		v any
	}
	pairs := make([]pair, 0, len(mapKeys))
	for _, k := range mapKeys {
		pairs = append(pairs, pair{k: fmt.Sprint(k.Interface()), v: rv.MapIndex(k).Interface()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })
	d := &MappingDriver{keys: make([]string, len(pairs)), vals: make([]any, len(pairs))}
	for i, p := range pairs {
		d.keys[i] = p.k
		d.vals[i] = p.v
	}
	return d, nil
}

func (d *MappingDriver) Next() bool {
	if d.i >= len(d.keys) {
		return false
	}
	d.i++
	return true
}
func (d *MappingDriver) Value() any  { return d.vals[d.i-1] }
func (d *MappingDriver) Name() string { return d.keys[d.i-1] }
func (d *MappingDriver) End()         {}
