package coerce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64ToInt64Overflow(t *testing.T) {
	_, ok := Uint64ToInt64(math.MaxUint64)
	require.False(t, ok)

	v, ok := Uint64ToInt64(42)
	require.True(t, ok)
	require.Equal(t, int64(42), v)
}

func TestFiniteFloat(t *testing.T) {
	_, ok := FiniteFloat(math.NaN())
	require.False(t, ok)
	_, ok = FiniteFloat(math.Inf(1))
	require.False(t, ok)
	v, ok := FiniteFloat(1.5)
	require.True(t, ok)
	require.Equal(t, 1.5, v)
}

func TestUTF8ASCIIFastPath(t *testing.T) {
	out, ok := UTF8("hello")
	require.True(t, ok)
	require.Equal(t, "hello", out)
}

func TestUTF8InvalidSequence(t *testing.T) {
	out, ok := UTF8(string([]byte{0xff, 0xfe}))
	require.False(t, ok)
	require.NotEmpty(t, out)
}
