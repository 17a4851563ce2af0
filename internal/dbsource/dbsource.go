// Package dbsource drives a *sql.Rows cursor into a table.Table, so a
// live MySQL result set can be piped straight through the encoder
// with any orientation. It buffers the whole cursor into a
// table.SimpleTable rather than streaming rows lazily: the encoder's
// table orientations (Split, Records, Columns) each need more than
// one pass over the data (once to build each column's Vector, again
// to build the row index), and a *sql.Rows cursor can only be walked
// forward once.
package dbsource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"tabjson/internal/datetime"
	"tabjson/internal/ddlschema"
	"tabjson/internal/table"
)

// Query runs sqlText against db and buffers the result set into a
// table.SimpleTable, using schema to coerce each column's values to
// the type the encoder's dispatcher expects (int64/float64/bool/
// string, matching schema's Kind classification of the CREATE TABLE
// this result set was queried from).
func Query(ctx context.Context, db *sql.DB, sqlText string, schema *ddlschema.Table) (*table.SimpleTable, error) {
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("dbsource: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dbsource: columns: %w", err)
	}

	kindOf := make(map[string]ddlschema.Kind, len(schema.Columns))
	for _, c := range schema.Columns {
		kindOf[c.Name] = c.Kind
	}

	data := make(map[string][]any, len(cols))
	for _, c := range cols {
		data[c] = nil
	}

	scanBuf := make([]any, len(cols))
	scanPtrs := make([]any, len(cols))
	for i := range scanBuf {
		scanPtrs[i] = &scanBuf[i]
	}

	var rowLabels []any
	rowNum := 0
	for rows.Next() {
		if err := rows.Scan(scanPtrs...); err != nil {
			return nil, fmt.Errorf("dbsource: scan row %d: %w", rowNum, err)
		}
		for i, c := range cols {
			data[c] = append(data[c], coerce(scanBuf[i], kindOf[c]))
		}
		rowLabels = append(rowLabels, int64(rowNum))
		rowNum++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dbsource: row iteration: %w", err)
	}

	idx := table.NewSliceIndex("", rowLabels)
	return table.NewSimpleTable(cols, idx, data), nil
}

// coerce converts a driver-returned value to the Go type the
// dispatcher classifies per its numeric/string rules, per kind. A
// SQL NULL (a nil v) always stays nil.
func coerce(v any, kind ddlschema.Kind) any {
	if v == nil {
		return nil
	}

	switch kind {
	case ddlschema.KindInt, ddlschema.KindBool:
		switch x := v.(type) {
		case []byte:
			var n int64
			fmt.Sscanf(string(x), "%d", &n)
			if kind == ddlschema.KindBool {
				return n != 0
			}
			return n
		case int64:
			if kind == ddlschema.KindBool {
				return x != 0
			}
			return x
		}
	case ddlschema.KindFloat:
		switch x := v.(type) {
		case []byte:
			var f float64
			fmt.Sscanf(string(x), "%g", &f)
			return f
		case float64:
			return x
		}
	case ddlschema.KindDatetime:
		switch x := v.(type) {
		case time.Time:
			return datetime.NullTime{Time: x, Valid: true}
		case []byte:
			t, err := time.Parse("2006-01-02 15:04:05", string(x))
			if err != nil {
				return datetime.NullTime{Valid: false}
			}
			return datetime.NullTime{Time: t, Valid: true}
		}
	}

	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
