package iterdrv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tabjson/internal/labels"
	"tabjson/internal/orient"
	"tabjson/internal/table"
)

func newFixtureTable() *table.SimpleTable {
	idx := table.NewSliceIndex("", []any{0, 1})
	return table.NewSimpleTable([]string{"x", "y"}, idx, map[string][]any{
		"x": {1, 3},
		"y": {2, 4},
	})
}

func TestIndexSplitDriver(t *testing.T) {
	idx := table.NewSliceIndex("idx", []any{0, 1})
	names, vals := drain(t, NewIndexSplit(idx))
	require.Equal(t, []string{"name", "data"}, names)
	require.Equal(t, "idx", vals[0])
	require.Equal(t, []any{0, 1}, vals[1])
}

func TestIndexArrayDriver(t *testing.T) {
	idx := table.NewSliceIndex("idx", []any{0, 1})
	_, vals := drain(t, NewIndexArray(idx))
	require.Equal(t, []any{0, 1}, vals)
}

func TestVectorSplitDriver(t *testing.T) {
	idx := table.NewSliceIndex("", []any{"a", "b"})
	v := table.NewSliceVector("v", idx, []any{1.0, 2.0})
	names, vals := drain(t, NewVectorSplit(v))
	require.Equal(t, []string{"name", "index", "data"}, names)
	require.Equal(t, "v", vals[0])
	require.Equal(t, []any{"a", "b"}, vals[1])
	require.Equal(t, []any{1.0, 2.0}, vals[2])
}

func TestVectorObjectDriver(t *testing.T) {
	idx := table.NewSliceIndex("", []any{"a", "b"})
	v := table.NewSliceVector("v", idx, []any{1.0, 2.0})
	cache, err := labels.BuildFromValues([]any{"a", "b"}, v.Len(), labels.Stringify)
	require.NoError(t, err)
	names, vals := drain(t, NewVectorObject(v, cache))
	require.Equal(t, []string{"a", "b"}, names)
	require.Equal(t, []any{1.0, 2.0}, vals)
}

func TestTableSplitDriverForcesValuesOrientation(t *testing.T) {
	tbl := newFixtureTable()
	o := orient.Split
	drv := NewTableSplit(tbl, &o)
	require.Equal(t, orient.Values, o)
	names, vals := drain(t, drv)
	require.Equal(t, []string{"columns", "index", "data"}, names)
	require.Equal(t, []any{"x", "y"}, vals[0])
	require.Equal(t, []any{0, 1}, vals[1])
	require.Equal(t, []any{[]any{1, 2}, []any{3, 4}}, vals[2])
	require.Equal(t, orient.Split, o, "orientation restored on End")
}

func TestTableDriverColumnsMode(t *testing.T) {
	tbl := newFixtureTable()
	o := orient.Columns
	cache, err := labels.Build(tbl.Columns(), len(tbl.Columns()))
	require.NoError(t, err)
	drv := NewTable(tbl, &o, true, cache)
	names, vals := drain(t, drv)
	require.Equal(t, []string{"x", "y"}, names)
	xVec := vals[0].(table.Vector)
	require.Equal(t, 1, xVec.At(0))
	require.Equal(t, 3, xVec.At(1))
	require.Equal(t, orient.Columns, o)
}

func TestTableDriverRecordsModeForcesIndexForRows(t *testing.T) {
	tbl := newFixtureTable()
	o := orient.Records
	drv := NewTable(tbl, &o, false, nil)
	require.Equal(t, orient.Index, o, "Records forces Index while rows are iterated")

	var rows []table.Vector
	for drv.Next() {
		rows = append(rows, drv.Value().(table.Vector))
	}
	drv.End()
	require.Len(t, rows, 2)
	require.Equal(t, 1, rows[0].At(0))
	require.Equal(t, 2, rows[0].At(1))
	require.Equal(t, orient.Records, o, "restored after End")
}
