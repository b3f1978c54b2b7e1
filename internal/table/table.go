// Package table holds the normalized tabular representation shared by every
// aggregate in the compliance engine. Raw BI payloads come in as loosely
// typed column mappings; Normalize turns them into a Table with equal-length,
// typed columns before any grouping runs.
package table

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the declared type of a column or the runtime type of a cell.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
)

// Schema maps column names to the kind their cells should be coerced to.
// Columns absent from the schema stay strings.
type Schema map[string]Kind

// Date is a calendar date with no time zone attached. It is comparable and
// safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return DateOf(t)
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Cell is one typed value in a table. The zero value is the null cell, which
// is what padding and failed coercions produce.
type Cell struct {
	kind Kind
	str  string
	num  float64
	date Date
}

// StringCell returns a string-valued cell.
func StringCell(s string) Cell {
	return Cell{kind: KindString, str: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// DateCell returns a date-valued cell.
func DateCell(d Date) Cell {
	return Cell{kind: KindDate, date: d}
}

// Kind returns the runtime kind of the cell.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell carries no value.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Number returns the numeric value and whether the cell is numeric.
func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// Date returns the date value and whether the cell is a date.
func (c Cell) Date() (Date, bool) {
	return c.date, c.kind == KindDate
}

// Text renders the cell for display and grouping. Null cells render empty.
func (c Cell) Text() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindDate:
		return c.date.String()
	default:
		return ""
	}
}

// Table is an immutable rectangular dataset: every column has the same
// length. Build one with Normalize or New.
type Table struct {
	cols  []string
	cells map[string][]Cell
	rows  int
}

// New builds a table from pre-typed columns. Columns keep the given order;
// shorter columns are right-padded with null cells.
func New(cols []string, cells map[string][]Cell) *Table {
	rows := 0
	for _, col := range cols {
		if n := len(cells[col]); n > rows {
			rows = n
		}
	}
	padded := make(map[string][]Cell, len(cols))
	for _, col := range cols {
		c := cells[col]
		for len(c) < rows {
			c = append(c, Cell{})
		}
		padded[col] = c
	}
	return &Table{cols: append([]string(nil), cols...), cells: padded, rows: rows}
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{cells: map[string][]Cell{}}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in table order.
func (t *Table) Columns() []string { return t.cols }

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cells[name]
	return ok
}

// HasColumns reports whether every named column exists.
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if !t.HasColumn(name) {
			return false
		}
	}
	return true
}

// At returns the cell at the given column and row. Unknown columns and
// out-of-range rows yield the null cell.
func (t *Table) At(col string, row int) Cell {
	c, ok := t.cells[col]
	if !ok || row < 0 || row >= len(c) {
		return Cell{}
	}
	return c[row]
}

// Column returns the cells of the named column, or nil if it is absent.
func (t *Table) Column(name string) []Cell {
	return t.cells[name]
}
