// Package config loads an encoder options profile (and, optionally, a
// literal table to encode) from a TOML document, the same way the
// teacher's internal/parser/toml package decodes a schema document:
// a plain exported struct decoded with github.com/BurntSushi/toml,
// then validated and converted into the package's own types rather
// than handed to callers raw.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"tabjson/internal/table"
)

// tomlProfile is the top-level TOML document: an [options] table
// mirroring spec.md §6's Options table, plus an optional [table]
// literal for the encode subcommand's no-database mode.
type tomlProfile struct {
	Options tomlOptions `toml:"options"`
	Table   *tomlTable  `toml:"table"`
}

// tomlOptions maps [options].
type tomlOptions struct {
	EnsureASCII     bool   `toml:"ensure_ascii"`
	DoublePrecision int    `toml:"double_precision"`
	EncodeHTMLChars bool   `toml:"encode_html_chars"`
	Orient          string `toml:"orient"`
	DateUnit        string `toml:"date_unit"`
	ISODates        bool   `toml:"iso_dates"`
}

// tomlTable maps [table]: an ordered column list, an index label
// list, and a column-name -> value-list map, mirroring the shape
// table.SimpleTable already expects.
type tomlTable struct {
	Columns []string         `toml:"columns"`
	Index   []any            `toml:"index"`
	Data    map[string][]any `toml:"data"`
}

// Profile is a validated encoder profile, ready to be turned into
// Marshal options.
type Profile struct {
	EnsureASCII     bool
	DoublePrecision int
	EncodeHTMLChars bool
	Orient          string
	DateUnit        string
	ISODates        bool

	// Table is the literal table from [table], or nil if the profile
	// carries options only.
	Table *table.SimpleTable
}

// LoadFile opens the file at path and parses it as an encoder profile.
func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a TOML encoder profile from r.
func Load(r io.Reader) (*Profile, error) {
	var tp tomlProfile
	if _, err := toml.NewDecoder(r).Decode(&tp); err != nil {
		return nil, fmt.Errorf("config: decode error: %w", err)
	}
	return newConverter(&tp).convert()
}

type converter struct {
	tp *tomlProfile
}

func newConverter(tp *tomlProfile) *converter {
	return &converter{tp: tp}
}

func (c *converter) convert() (*Profile, error) {
	p := &Profile{
		EnsureASCII:     c.tp.Options.EnsureASCII,
		DoublePrecision: c.tp.Options.DoublePrecision,
		EncodeHTMLChars: c.tp.Options.EncodeHTMLChars,
		Orient:          c.tp.Options.Orient,
		DateUnit:        c.tp.Options.DateUnit,
		ISODates:        c.tp.Options.ISODates,
	}

	if c.tp.Table != nil {
		t, err := c.convertTable(c.tp.Table)
		if err != nil {
			return nil, fmt.Errorf("config: table: %w", err)
		}
		p.Table = t
	}

	return p, nil
}

func (c *converter) convertTable(tt *tomlTable) (*table.SimpleTable, error) {
	if len(tt.Columns) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}
	for _, col := range tt.Columns {
		vals, ok := tt.Data[col]
		if !ok {
			return nil, fmt.Errorf("column %q has no data entry", col)
		}
		if len(vals) != len(tt.Index) {
			return nil, fmt.Errorf("column %q has %d values, index has %d labels", col, len(vals), len(tt.Index))
		}
	}

	idx := table.NewSliceIndex("", tt.Index)
	return table.NewSimpleTable(tt.Columns, idx, tt.Data), nil
}
