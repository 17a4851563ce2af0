package encoder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tabjson/internal/datetime"
	"tabjson/internal/orient"
	"tabjson/internal/table"
)

func marshal(t *testing.T, v any, opts Options) string {
	t.Helper()
	if opts.DoublePrecision == 0 {
		opts.DoublePrecision = 10
	}
	b, err := Marshal(v, opts)
	require.NoError(t, err)
	return string(b)
}

func TestMarshalMapWithNull(t *testing.T) {
	got := marshal(t, map[string]any{"a": 1, "b": nil}, Options{})
	require.Equal(t, `{"a":1,"b":null}`, got)
}

func fixtureTable() *table.SimpleTable {
	idx := table.NewSliceIndex("", []any{0, 1})
	return table.NewSimpleTable([]string{"x", "y"}, idx, map[string][]any{
		"x": {1, 3},
		"y": {2, 4},
	})
}

func TestMarshalTableColumns(t *testing.T) {
	got := marshal(t, table.Table(fixtureTable()), Options{Orient: orient.Columns})
	require.Equal(t, `{"x":{"0":1,"1":3},"y":{"0":2,"1":4}}`, got)
}

func TestMarshalTableRecords(t *testing.T) {
	got := marshal(t, table.Table(fixtureTable()), Options{Orient: orient.Records})
	require.Equal(t, `[{"x":1,"y":2},{"x":3,"y":4}]`, got)
}

func TestMarshalTableSplit(t *testing.T) {
	got := marshal(t, table.Table(fixtureTable()), Options{Orient: orient.Split})
	require.Equal(t, `{"columns":["x","y"],"index":[0,1],"data":[[1,2],[3,4]]}`, got)
}

func TestMarshalTableIndex(t *testing.T) {
	got := marshal(t, table.Table(fixtureTable()), Options{Orient: orient.Index})
	require.Equal(t, `{"0":{"x":1,"y":2},"1":{"x":3,"y":4}}`, got)
}

func TestMarshalTableValues(t *testing.T) {
	got := marshal(t, table.Table(fixtureTable()), Options{Orient: orient.Values})
	require.Equal(t, `[[1,2],[3,4]]`, got)
}

func TestMarshalVectorSplitWithNaN(t *testing.T) {
	idx := table.NewSliceIndex("", []any{"a", "b"})
	v := table.NewSliceVector("v", idx, []any{1.0, nanValue()})
	got := marshal(t, table.Vector(v), Options{Orient: orient.Split, DoublePrecision: 1})
	require.Equal(t, `{"name":"v","index":["a","b"],"data":[1.0,null]}`, got)
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestMarshalDatetimeEpochAndISO(t *testing.T) {
	tm := time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)

	got := marshal(t, tm, Options{DateUnit: datetime.UnitSeconds})
	require.Equal(t, `86400`, got)

	got = marshal(t, tm, Options{DateUnit: datetime.UnitSeconds, ISODates: true})
	require.Equal(t, `"1970-01-02T00:00:00.000"`, got)
}

func TestMarshalNDArray2D(t *testing.T) {
	data := make([]any, 6)
	for i := range data {
		data[i] = int64(i)
	}
	arr := table.NewDenseArray([]int{2, 3}, table.DTypeInt64, data)
	got := marshal(t, table.NDArray(arr), Options{})
	require.Equal(t, `[[0,1,2],[3,4,5]]`, got)
}

func TestMarshalNDArrayWithLabelsAsObjects(t *testing.T) {
	data := make([]any, 4)
	for i := range data {
		data[i] = int64(i)
	}
	arr := table.NewDenseArray([]int{2, 2}, table.DTypeInt64, data).
		WithLabels([]string{"r0", "r1"}, []string{"c0", "c1"})
	got := marshal(t, table.NDArray(arr), Options{})
	require.Equal(t, `{"r0":{"c0":0,"c1":1},"r1":{"c0":2,"c1":3}}`, got)
}

func TestMarshalOptionErrorProducesNoOutput(t *testing.T) {
	b, err := Marshal(map[string]any{"a": 1}, Options{DoublePrecision: -1})
	require.Error(t, err)
	require.Nil(t, b)
}

func TestMarshalDefaultHandler(t *testing.T) {
	got := marshal(t, make(chan int), Options{
		DefaultHandler: func(v any) (any, error) { return 7, nil },
	})
	require.Equal(t, `7`, got)
}
