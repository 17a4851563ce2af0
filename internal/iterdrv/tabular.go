package iterdrv

import (
	"tabjson/internal/labels"
	"tabjson/internal/orient"
	"tabjson/internal/strider"
	"tabjson/internal/table"
)

// indexValues materializes an IndexObj's labels as a plain value
// slice, the shape spec.md's Split orientation emits under "index"
// and "data".
func indexValues(idx table.IndexObj) []any {
	out := make([]any, idx.Len())
	for i := range out {
		out[i] = idx.At(i)
	}
	return out
}

// IndexArrayDriver walks an IndexObj's values as a plain array — the
// non-Split rendering of spec.md §4.1 rule 11 ("extract underlying
// values and emit as numeric array").
type IndexArrayDriver struct {
	idx table.IndexObj
	i   int
	cur any
}

// NewIndexArray builds an IndexArrayDriver over idx.
func NewIndexArray(idx table.IndexObj) *IndexArrayDriver {
	return &IndexArrayDriver{idx: idx}
}

func (d *IndexArrayDriver) Next() bool {
	if d.i >= d.idx.Len() {
		return false
	}
	d.cur = d.idx.At(d.i)
	d.i++
	return true
}
func (d *IndexArrayDriver) Value() any  { return d.cur }
func (d *IndexArrayDriver) Name() string { return "" }
func (d *IndexArrayDriver) End()         {}

// IndexSplitDriver emits an IndexObj as {"name":..,"data":[...]}, the
// Split rendering of spec.md §4.1 rule 11.
type IndexSplitDriver struct {
	idx  table.IndexObj
	step int
}

// NewIndexSplit builds an IndexSplitDriver over idx.
func NewIndexSplit(idx table.IndexObj) *IndexSplitDriver {
	return &IndexSplitDriver{idx: idx}
}

func (d *IndexSplitDriver) Next() bool {
	if d.step >= 2 {
		return false
	}
	d.step++
	return true
}
func (d *IndexSplitDriver) Name() string {
	if d.step == 1 {
		return "name"
	}
	return "data"
}
func (d *IndexSplitDriver) Value() any {
	if d.step == 1 {
		return d.idx.Name()
	}
	return indexValues(d.idx)
}
func (d *IndexSplitDriver) End() {}

// VectorArrayDriver walks a Vector's values as a plain array (any
// orientation other than Split/Index/Columns).
type VectorArrayDriver struct {
	v   table.Vector
	i   int
	cur any
}

// NewVectorArray builds a VectorArrayDriver over v.
func NewVectorArray(v table.Vector) *VectorArrayDriver {
	return &VectorArrayDriver{v: v}
}

func (d *VectorArrayDriver) Next() bool {
	if d.i >= d.v.Len() {
		return false
	}
	d.cur = d.v.At(d.i)
	d.i++
	return true
}
func (d *VectorArrayDriver) Value() any  { return d.cur }
func (d *VectorArrayDriver) Name() string { return "" }
func (d *VectorArrayDriver) End()         {}

// VectorObjectDriver walks a Vector as {index_label: value}, used
// under Index/Columns orientation (spec.md §4.1 rule 12).
type VectorObjectDriver struct {
	v       table.Vector
	lbl     *labels.Cache
	i       int
	cur     any
	curName string
}

// NewVectorObject builds a VectorObjectDriver over v, keyed by the
// precomputed index label cache.
func NewVectorObject(v table.Vector, lbl *labels.Cache) *VectorObjectDriver {
	return &VectorObjectDriver{v: v, lbl: lbl}
}

func (d *VectorObjectDriver) Next() bool {
	if d.i >= d.v.Len() {
		return false
	}
	d.cur = d.v.At(d.i)
	d.curName = d.lbl.At(d.i)
	d.i++
	return true
}
func (d *VectorObjectDriver) Value() any  { return d.cur }
func (d *VectorObjectDriver) Name() string { return d.curName }
func (d *VectorObjectDriver) End()         {}

// VectorSplitDriver emits a Vector as
// {"name":..,"index":[...],"data":[...]}, the Split rendering of
// spec.md §4.1 rule 12.
type VectorSplitDriver struct {
	v    table.Vector
	step int
}

// NewVectorSplit builds a VectorSplitDriver over v.
func NewVectorSplit(v table.Vector) *VectorSplitDriver {
	return &VectorSplitDriver{v: v}
}

func (d *VectorSplitDriver) Next() bool {
	if d.step >= 3 {
		return false
	}
	d.step++
	return true
}
func (d *VectorSplitDriver) Name() string {
	switch d.step {
	case 1:
		return "name"
	case 2:
		return "index"
	default:
		return "data"
	}
}
func (d *VectorSplitDriver) Value() any {
	switch d.step {
	case 1:
		return d.v.Name()
	case 2:
		return indexValues(d.v.Index())
	default:
		vals := make([]any, d.v.Len())
		for i := range vals {
			vals[i] = d.v.At(i)
		}
		return vals
	}
}
func (d *VectorSplitDriver) End() {}

// TableSplitDriver emits a Table as
// {"columns":[...],"index":[...],"data":[[...],...]} and forces the
// encoder's live orientation to Values for the duration, so that any
// nested value encountered while materializing "data" emits raw
// (spec.md §4.4's Split handling).
type TableSplitDriver struct {
	t     table.Table
	scope orient.Scope
	step  int
}

// NewTableSplit builds a TableSplitDriver over t, forcing *orientPtr
// to Values. Its End method restores the prior orientation.
func NewTableSplit(t table.Table, orientPtr *orient.Orientation) *TableSplitDriver {
	return &TableSplitDriver{t: t, scope: orient.Enter(orientPtr, orient.Values)}
}

func (d *TableSplitDriver) Next() bool {
	if d.step >= 3 {
		return false
	}
	d.step++
	return true
}
func (d *TableSplitDriver) Name() string {
	switch d.step {
	case 1:
		return "columns"
	case 2:
		return "index"
	default:
		return "data"
	}
}
func (d *TableSplitDriver) Value() any {
	switch d.step {
	case 1:
		cols := make([]any, len(d.t.Columns()))
		for i, c := range d.t.Columns() {
			cols[i] = c
		}
		return cols
	case 2:
		return indexValues(d.t.Index())
	default:
		rows := make([]any, d.t.NumRows())
		for r := range rows {
			row := make([]any, len(d.t.Columns()))
			for c, col := range d.t.Columns() {
				row[c] = d.t.At(r, col)
			}
			rows[r] = row
		}
		return rows
	}
}
func (d *TableSplitDriver) End() { d.scope.Restore() }

// TableDriver walks a Table row-by-row (Records/Index/Values
// orientation) or column-by-column (Columns orientation), yielding
// each row/column as a table.Vector for the encoder to recurse into
// (spec.md §4.4's non-Split table handling). Under Records it forces
// the live orientation to Index for the duration, so each row vector
// renders as {column: value}; the original orientation is restored on
// End regardless of how iteration finished.
type TableDriver struct {
	t        table.Table
	scope    orient.Scope
	byColumn bool
	lbl      *labels.Cache // nil when the outer shape is an array (Records/Values)
	i, n     int
	cur      any
	curName  string
}

// NewTable builds a TableDriver. lbl is the precomputed row-label (Index
// orientation) or column-name (Columns orientation) cache, or nil for
// Records/Values.
func NewTable(t table.Table, orientPtr *orient.Orientation, byColumn bool, lbl *labels.Cache) *TableDriver {
	forced := *orientPtr
	if forced == orient.Records {
		forced = orient.Index
	}
	scope := orient.Enter(orientPtr, forced)

	n := t.NumRows()
	if byColumn {
		n = len(t.Columns())
	}
	return &TableDriver{t: t, scope: scope, byColumn: byColumn, lbl: lbl, n: n}
}

func (d *TableDriver) Next() bool {
	if d.i >= d.n {
		return false
	}
	if d.byColumn {
		name := d.t.Columns()[d.i]
		d.cur = d.t.Column(name)
	} else {
		d.cur = table.NewRowVector(d.t, d.i)
	}
	if d.lbl != nil {
		d.curName = d.lbl.At(d.i)
	} else {
		d.curName = ""
	}
	d.i++
	return true
}
func (d *TableDriver) Value() any  { return d.cur }
func (d *TableDriver) Name() string { return d.curName }
func (d *TableDriver) End()         { d.scope.Restore() }

// NDArrayStrideChild is the value an NDArrayDriver's Next hands back
// when descending into a nested axis instead of materializing a leaf
// scalar: "child value plus the strider to reuse" (Design Notes §9),
// a plain returned value rather than a mutable passthrough slot.
type NDArrayStrideChild struct {
	Arr table.NDArray
	S   *strider.Strider
}

// NDArrayDriver walks a table.NDArray one axis at a time via a
// strider.Strider (spec.md §4.3/§4.2's numeric-array driver).
type NDArrayDriver struct {
	arr    table.NDArray
	s      *strider.Strider
	reused bool // true for every driver but the outermost (root) one
	cur    any
	curKey string
}

// NewNDArray begins a fresh strider over arr (the root encounter of
// an n-d array).
func NewNDArray(arr table.NDArray, transpose bool) *NDArrayDriver {
	return &NDArrayDriver{arr: arr, s: strider.New(arr, transpose)}
}

// ReuseNDArray continues walking arr with an already-descended
// strider handed back via NDArrayStrideChild, instead of allocating a
// new one.
func ReuseNDArray(arr table.NDArray, s *strider.Strider) *NDArrayDriver {
	return &NDArrayDriver{arr: arr, s: s, reused: true}
}

// Object reports whether this axis should be emitted as a keyed
// object: the leaf axis is keyed when the array carries column
// labels, the outermost axis is keyed when it carries row labels.
func (d *NDArrayDriver) Object() bool {
	if d.s.AtLeaf() {
		return len(d.arr.ColumnLabels()) > 0
	}
	return !d.reused && len(d.arr.RowLabels()) > 0
}

func (d *NDArrayDriver) Next() bool {
	if d.s.AtLeaf() {
		offset, ok := d.s.NextLeaf()
		if !ok {
			return false
		}
		d.cur = d.s.At(offset)
		d.curKey = d.s.LeafColumnLabel()
		return true
	}
	if !d.s.NextDescent() {
		return false
	}
	d.curKey = d.s.OuterRowLabel()
	d.cur = NDArrayStrideChild{Arr: d.arr, S: d.s}
	return true
}
func (d *NDArrayDriver) Value() any  { return d.cur }
func (d *NDArrayDriver) Name() string { return d.curKey }
func (d *NDArrayDriver) End() {
	if d.reused {
		d.s.EndLevel()
	}
}
