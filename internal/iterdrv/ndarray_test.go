package iterdrv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tabjson/internal/table"
)

func values(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

// collectNDArray drives an NDArrayDriver fully, descending into every
// NDArrayStrideChild it yields, and returns the flat leaf values in
// visitation order.
func collectNDArray(t *testing.T, drv *NDArrayDriver) []int64 {
	t.Helper()
	var out []int64
	defer drv.End()
	for drv.Next() {
		switch v := drv.Value().(type) {
		case NDArrayStrideChild:
			child := ReuseNDArray(v.Arr, v.S)
			out = append(out, collectNDArray(t, child)...)
		default:
			out = append(out, v.(int64))
		}
	}
	return out
}

func TestNDArrayDriver2D(t *testing.T) {
	arr := table.NewDenseArray([]int{2, 3}, table.DTypeInt64, values(6))
	drv := NewNDArray(arr, false)
	require.False(t, drv.Object())
	got := collectNDArray(t, drv)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 5}, got)
}

func TestNDArrayDriverObjectWithLabels(t *testing.T) {
	arr := table.NewDenseArray([]int{2, 2}, table.DTypeInt64, values(4)).
		WithLabels([]string{"r0", "r1"}, []string{"c0", "c1"})
	drv := NewNDArray(arr, false)
	require.True(t, drv.Object(), "row labels make the outer axis a keyed object")

	var rowKeys []string
	for drv.Next() {
		rowKeys = append(rowKeys, drv.Name())
		child := drv.Value().(NDArrayStrideChild)
		inner := ReuseNDArray(child.Arr, child.S)
		require.True(t, inner.Object(), "column labels make the leaf axis a keyed object")
		var colKeys []string
		for inner.Next() {
			colKeys = append(colKeys, inner.Name())
		}
		inner.End()
		require.Equal(t, []string{"c0", "c1"}, colKeys)
	}
	drv.End()
	require.Equal(t, []string{"r0", "r1"}, rowKeys)
}
