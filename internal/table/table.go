// Package table defines the narrow capability surface the encoder
// consumes from the tabular-data ecosystem: attribute fetch, element
// fetch, shape/stride/dtype inspection. It never depends on the
// encoder packages, so alternative tabular libraries (or, as in
// internal/dbsource, a live SQL cursor) can implement it directly.
package table

// DType tags the element kind of an NDArray or a Vector's underlying
// buffer.
type DType int

const (
	DTypeInt64 DType = iota
	DTypeFloat64
	DTypeBool
	DTypeDatetime
	DTypeString
	DTypeObject // arbitrary Go values, dispatched individually
)

// NDArray is a contiguous, strided, n-dimensional typed numeric
// buffer. Shape and Strides are in elements, not bytes: stride i is
// how many flat-index positions to advance to move one step along
// axis i.
type NDArray interface {
	Shape() []int
	Strides() []int
	DType() DType
	// At returns the element at the given flat offset, unconverted:
	// int64, float64, bool, or datetime.NullTime depending on DType.
	At(offset int) any
	// ColumnLabels and RowLabels return the label set for the last
	// and first axis respectively, or nil if the array carries none.
	ColumnLabels() []string
	RowLabels() []string
}

// IndexObj is a labeled 1-D index, e.g. a table's row index.
type IndexObj interface {
	Name() string
	Len() int
	At(i int) any
}

// Vector is a labeled 1-D array: values plus a parallel index.
type Vector interface {
	Name() string
	Index() IndexObj
	Len() int
	At(i int) any
}

// Table is a 2-D labeled array: named columns over a shared row
// index.
type Table interface {
	Columns() []string
	Index() IndexObj
	NumRows() int
	// At returns the value of the given column at the given row.
	At(row int, column string) any
	// Column returns the column as a Vector sharing the table's index.
	Column(name string) Vector
}
