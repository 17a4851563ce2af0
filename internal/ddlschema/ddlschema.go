// Package ddlschema extracts column name, order, and type metadata
// from a CREATE TABLE statement using TiDB's SQL parser, the same AST
// walk the teacher's internal/parser/mysql performs to build a
// core.Table. Here the result is a flat column list used to label
// internal/dbsource's result-set columns and pick a numeric vs.
// string coercer for each one, rather than a full schema model.
package ddlschema

import (
	"fmt"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"tabjson/internal/table"
)

// Kind classifies a column's type for coercion purposes: the encoder
// only needs to know whether a value is numeric, boolean, temporal,
// or everything else, not the full MySQL type taxonomy.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDatetime
)

// Column describes one CREATE TABLE column, in declaration order.
type Column struct {
	Name       string
	Kind       Kind
	Nullable   bool
	PrimaryKey bool
}

// Table is the column metadata for one parsed CREATE TABLE statement.
type Table struct {
	Name    string
	Columns []Column
}

// DType maps a Column's Kind to the table.DType the dbsource cursor
// should coerce its values into.
func (c Column) DType() table.DType {
	switch c.Kind {
	case KindInt:
		return table.DTypeInt64
	case KindFloat:
		return table.DTypeFloat64
	case KindBool:
		return table.DTypeBool
	case KindDatetime:
		return table.DTypeDatetime
	default:
		return table.DTypeString
	}
}

// Parser parses CREATE TABLE statements with TiDB's SQL parser.
type Parser struct {
	p *parser.Parser
}

// NewParser builds a Parser.
func NewParser() *Parser {
	return &Parser{p: parser.New()}
}

// Parse extracts column metadata from the first CREATE TABLE
// statement found in sql. Statements that are not CREATE TABLE are
// ignored, matching the teacher's dump-parsing behavior of skipping
// anything that is not a table definition.
func (p *Parser) Parse(sql string) (*Table, error) {
	stmtNodes, _, err := p.p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("ddlschema: parse error: %w", err)
	}

	for _, stmt := range stmtNodes {
		create, ok := stmt.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		return convertCreateTable(create), nil
	}

	return nil, fmt.Errorf("ddlschema: no CREATE TABLE statement found")
}

func convertCreateTable(stmt *ast.CreateTableStmt) *Table {
	t := &Table{Name: stmt.Table.Name.O}

	for _, colDef := range stmt.Cols {
		col := Column{
			Name:     colDef.Name.Name.O,
			Kind:     classifyType(colDef.Tp.String()),
			Nullable: true,
		}
		for _, opt := range colDef.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				col.Nullable = false
			case ast.ColumnOptionNull:
				col.Nullable = true
			case ast.ColumnOptionPrimaryKey:
				col.PrimaryKey = true
				col.Nullable = false
			}
		}
		t.Columns = append(t.Columns, col)
	}

	return t
}

// classifyType maps a MySQL column type string (as rendered by TiDB's
// parser) to the coarse Kind the encoder's coercers need.
func classifyType(raw string) Kind {
	switch {
	case hasAnyPrefix(raw, "tinyint(1)"):
		return KindBool
	case hasAnyPrefix(raw, "int", "tinyint", "smallint", "mediumint", "bigint", "year"):
		return KindInt
	case hasAnyPrefix(raw, "float", "double", "decimal", "numeric"):
		return KindFloat
	case hasAnyPrefix(raw, "datetime", "timestamp", "date", "time"):
		return KindDatetime
	default:
		return KindString
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}
	return false
}
