package table

// RowVector adapts one row of a Table into a Vector whose index is the
// table's column names. This lets the existing Vector dispatch rules
// render a row as {column: value} under Index orientation, or as a
// plain value array under any other orientation, without a separate
// "table row" iterator driver.
type RowVector struct {
	t   Table
	row int
}

// NewRowVector builds a RowVector over the given row of t.
func NewRowVector(t Table, row int) *RowVector {
	return &RowVector{t: t, row: row}
}

func (r *RowVector) Name() string { return "" }
func (r *RowVector) Len() int     { return len(r.t.Columns()) }
func (r *RowVector) At(i int) any { return r.t.At(r.row, r.t.Columns()[i]) }
func (r *RowVector) Index() IndexObj {
	return columnNameIndex{cols: r.t.Columns()}
}

// columnNameIndex is the IndexObj a RowVector exposes: its labels are
// simply the owning table's column names.
type columnNameIndex struct {
	cols []string
}

func (c columnNameIndex) Name() string { return "" }
func (c columnNameIndex) Len() int     { return len(c.cols) }
func (c columnNameIndex) At(i int) any { return c.cols[i] }
