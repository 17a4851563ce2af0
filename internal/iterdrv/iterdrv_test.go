package iterdrv

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, d Driver) (names []string, values []any) {
	t.Helper()
	defer d.End()
	for d.Next() {
		names = append(names, d.Name())
		values = append(values, d.Value())
	}
	return names, values
}

func TestSliceDriver(t *testing.T) {
	_, vals := drain(t, NewSlice([]int{1, 2, 3}))
	require.Equal(t, []any{1, 2, 3}, vals)
}

type point struct {
	X, Y int
	tag  string //nolint:unused
}

func TestTupleDriverSkipsUnexported(t *testing.T) {
	_, vals := drain(t, NewTuple(point{X: 1, Y: 2, tag: "z"}))
	require.Equal(t, []any{1, 2}, vals)
}

func TestAttributeDriverSkipsUnexportedAndFuncs(t *testing.T) {
	type withFunc struct {
		A int
		B func()
		c int //nolint:unused
	}
	v := withFunc{A: 5, B: func() {}}
	rv := reflect.ValueOf(v)
	names, vals := drain(t, NewAttributeDir(rv))
	require.Equal(t, []string{"A"}, names)
	require.Equal(t, []any{5}, vals)
}

func TestMappingDriverSortsKeys(t *testing.T) {
	drv, err := NewMapping(map[string]any{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	names, vals := drain(t, drv)
	require.Equal(t, []string{"a", "b", "c"}, names)
	require.Equal(t, []any{1, 2, 3}, vals)
}

func TestMappingDriverCoercesNonStringKeys(t *testing.T) {
	drv, err := NewMapping(map[int]string{2: "two", 1: "one"})
	require.NoError(t, err)
	names, vals := drain(t, drv)
	require.Equal(t, []string{"1", "2"}, names)
	require.Equal(t, []any{"one", "two"}, vals)
}

func TestMappingDriverRejectsNonMap(t *testing.T) {
	_, err := NewMapping(42)
	require.Error(t, err)
}

type intIterable struct {
	vals []int
	i    int
}

func (it *intIterable) Next() (any, bool) {
	if it.i >= len(it.vals) {
		return nil, false
	}
	v := it.vals[it.i]
	it.i++
	return v, true
}

func TestIterableDriver(t *testing.T) {
	_, vals := drain(t, NewIterable(&intIterable{vals: []int{7, 8, 9}}))
	require.Equal(t, []any{7, 8, 9}, vals)
}
