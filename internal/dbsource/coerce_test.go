package dbsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tabjson/internal/datetime"
	"tabjson/internal/ddlschema"
)

func TestCoerceNilStaysNil(t *testing.T) {
	require.Nil(t, coerce(nil, ddlschema.KindInt))
}

func TestCoerceIntFromBytes(t *testing.T) {
	require.Equal(t, int64(42), coerce([]byte("42"), ddlschema.KindInt))
}

func TestCoerceBoolFromBytes(t *testing.T) {
	require.Equal(t, true, coerce([]byte("1"), ddlschema.KindBool))
	require.Equal(t, false, coerce([]byte("0"), ddlschema.KindBool))
}

func TestCoerceFloatFromBytes(t *testing.T) {
	require.Equal(t, 1.25, coerce([]byte("1.25"), ddlschema.KindFloat))
}

func TestCoerceDatetimeFromTime(t *testing.T) {
	tm := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := coerce(tm, ddlschema.KindDatetime)
	require.Equal(t, datetime.NullTime{Time: tm, Valid: true}, got)
}

func TestCoerceStringPassthrough(t *testing.T) {
	require.Equal(t, "hi", coerce([]byte("hi"), ddlschema.KindString))
}
