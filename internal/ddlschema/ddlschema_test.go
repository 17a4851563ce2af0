package ddlschema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tabjson/internal/table"
)

func TestParseBasicTable(t *testing.T) {
	p := NewParser()
	tb, err := p.Parse(`CREATE TABLE users (
		id BIGINT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		score DOUBLE,
		active TINYINT(1),
		created_at DATETIME
	)`)
	require.NoError(t, err)
	require.Equal(t, "users", tb.Name)
	require.Len(t, tb.Columns, 5)

	byName := map[string]Column{}
	for _, c := range tb.Columns {
		byName[c.Name] = c
	}

	require.Equal(t, KindInt, byName["id"].Kind)
	require.True(t, byName["id"].PrimaryKey)
	require.False(t, byName["id"].Nullable)

	require.Equal(t, KindString, byName["name"].Kind)
	require.False(t, byName["name"].Nullable)

	require.Equal(t, KindFloat, byName["score"].Kind)
	require.Equal(t, table.DTypeFloat64, byName["score"].DType())

	require.Equal(t, KindBool, byName["active"].Kind)
	require.Equal(t, KindDatetime, byName["created_at"].Kind)
	require.Equal(t, table.DTypeDatetime, byName["created_at"].DType())
}

func TestParseNoCreateTableIsError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(`SELECT 1`)
	require.Error(t, err)
}

func TestParseSyntaxErrorIsError(t *testing.T) {
	p := NewParser()
	_, err := p.Parse(`CREATE TABLE (((`)
	require.Error(t, err)
}
