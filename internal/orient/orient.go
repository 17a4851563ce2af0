// Package orient tracks the chosen output shape for a table and the
// derived shape its nested vectors and arrays must use while a table
// is being emitted.
package orient

import (
	"fmt"

	"tabjson/internal/jsonerr"
)

// Orientation selects how a table's rows/columns/values map to JSON.
type Orientation int

const (
	Columns Orientation = iota
	Records
	Index
	Split
	Values
)

// Parse maps the five accepted option strings to an Orientation.
func Parse(s string) (Orientation, error) {
	switch s {
	case "columns", "":
		return Columns, nil
	case "records":
		return Records, nil
	case "index":
		return Index, nil
	case "split":
		return Split, nil
	case "values":
		return Values, nil
	default:
		return 0, fmt.Errorf("%w: unknown orient %q", jsonerr.ErrOption, s)
	}
}

func (o Orientation) String() string {
	switch o {
	case Columns:
		return "columns"
	case Records:
		return "records"
	case Index:
		return "index"
	case Split:
		return "split"
	case Values:
		return "values"
	default:
		return "unknown"
	}
}

// Scope is the table driver's save/restore guard (Design Notes §9):
// entering a table snapshots the current orientation, optionally
// forces a different one for the duration of the table's iteration,
// and Restore puts the original back on every exit path.
type Scope struct {
	current  *Orientation
	original Orientation
}

// Enter snapshots *cur and forces it to forced. Call Restore (or defer
// it) on every exit path, success or failure.
func Enter(cur *Orientation, forced Orientation) Scope {
	s := Scope{current: cur, original: *cur}
	*cur = forced
	return s
}

// Restore puts the orientation back to what it was before Enter.
func (s Scope) Restore() {
	*s.current = s.original
}
