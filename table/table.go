// Package table exposes caller-owned records as a grid of named text columns.
//
// A Record wraps a single record and always has exactly one row. A List wraps
// a caller-owned slice of records and can grow one row at a time. Both share
// the column bookkeeping: columns keep their insertion order and are looked
// up by name without regard to case.
//
// Row and column indices are preconditions. Passing an index out of range is
// a programming error and panics, the same way indexing a slice does.
package table

import (
	"fmt"
	"strings"

	"github.com/gradekit/tabkit/segment"
	"github.com/zeebo/errs/v2"
)

var (
	// ErrDuplicateColumn is returned when a column name is registered twice.
	ErrDuplicateColumn = errs.Tag("duplicate column")

	// ErrUnknownColumn is returned when a column name is not registered.
	ErrUnknownColumn = errs.Tag("unknown column")

	// ErrFixedSize is returned by NewRow on tables that cannot grow.
	ErrFixedSize = errs.Tag("fixed size table")
)

// Table is the record-type independent view of a Record or a List.
type Table interface {
	// NewRow appends a row holding default values and returns its index.
	NewRow() (int, error)

	// SetDefaultValues stores the default of every column in row.
	SetDefaultValues(row int)

	// IsFixedSize reports whether NewRow always fails.
	IsFixedSize() bool

	ColumnCount() int
	RowCount() int

	// ColumnName returns the name col was registered with.
	ColumnName(col int) string

	// ColumnIndex looks name up without regard to case.
	ColumnIndex(name string) (int, bool)

	// Value returns the text form of the cell at row and col.
	Value(row, col int) string

	// SetValue decodes text into the cell at row and col. The cell is left
	// unchanged when text does not decode.
	SetValue(row, col int, text segment.Segment) error

	ValueByName(row int, name string) (string, error)
	SetValueByName(row int, name string, text segment.Segment) error

	// EqualsDefaultValue reports whether the cell holds its column default.
	EqualsDefaultValue(row, col int) bool
}

type columnSpec[T any] struct {
	name  string
	field Field[T]
}

// columns holds what Record and List share. record returns the record at a
// row index; rows returns the number of rows.
type columns[T any] struct {
	specs  []columnSpec[T]
	byName map[string]int
	record func(row int) *T
	rows   func() int
}

// AddColumn registers a column named name bound to f. It fails when a column
// with the same name, compared without regard to case, already exists.
func (c *columns[T]) AddColumn(name string, f Field[T]) error {
	key := strings.ToLower(name)
	if _, ok := c.byName[key]; ok {
		return ErrDuplicateColumn.Errorf("duplicate column %q", name)
	}
	if c.byName == nil {
		c.byName = make(map[string]int)
	}
	c.specs = append(c.specs, columnSpec[T]{name: name, field: f})
	c.byName[key] = len(c.specs) - 1
	return nil
}

// ColumnCount returns the number of registered columns.
func (c *columns[T]) ColumnCount() int { return len(c.specs) }

// RowCount returns the number of rows.
func (c *columns[T]) RowCount() int { return c.rows() }

// ColumnName returns the name col was registered with.
func (c *columns[T]) ColumnName(col int) string { return c.spec(col).name }

// ColumnIndex looks name up without regard to case.
func (c *columns[T]) ColumnIndex(name string) (int, bool) {
	col, ok := c.byName[strings.ToLower(name)]
	return col, ok
}

// Value returns the text form of the cell at row and col.
func (c *columns[T]) Value(row, col int) string {
	return c.spec(col).field.Encode(c.at(row))
}

// SetValue decodes text into the cell at row and col.
func (c *columns[T]) SetValue(row, col int, text segment.Segment) error {
	spec := c.spec(col)
	if err := spec.field.Decode(c.at(row), text); err != nil {
		return errs.Errorf("column %q: %w", spec.name, err)
	}
	return nil
}

// ValueByName returns the text form of the named cell in row.
func (c *columns[T]) ValueByName(row int, name string) (string, error) {
	col, ok := c.ColumnIndex(name)
	if !ok {
		return "", ErrUnknownColumn.Errorf("unknown column %q", name)
	}
	return c.Value(row, col), nil
}

// SetValueByName decodes text into the named cell in row.
func (c *columns[T]) SetValueByName(row int, name string, text segment.Segment) error {
	col, ok := c.ColumnIndex(name)
	if !ok {
		return ErrUnknownColumn.Errorf("unknown column %q", name)
	}
	return c.SetValue(row, col, text)
}

// EqualsDefaultValue reports whether the cell holds its column default.
func (c *columns[T]) EqualsDefaultValue(row, col int) bool {
	return c.spec(col).field.EqualsDefault(c.at(row))
}

// SetDefaultValues stores the default of every column in row.
func (c *columns[T]) SetDefaultValues(row int) {
	rec := c.at(row)
	for _, spec := range c.specs {
		spec.field.SetDefault(rec)
	}
}

func (c *columns[T]) spec(col int) columnSpec[T] {
	if col < 0 || col >= len(c.specs) {
		panic(fmt.Sprintf("table: column %d out of range [0, %d)", col, len(c.specs)))
	}
	return c.specs[col]
}

func (c *columns[T]) at(row int) *T {
	if n := c.rows(); row < 0 || row >= n {
		panic(fmt.Sprintf("table: row %d out of range [0, %d)", row, n))
	}
	return c.record(row)
}

// Record adapts a single record. It always has one row.
type Record[T any] struct {
	columns[T]
	rec *T
}

// NewRecord returns a fixed size table over rec. The caller keeps ownership
// of rec.
func NewRecord[T any](rec *T) *Record[T] {
	r := &Record[T]{rec: rec}
	r.record = func(int) *T { return r.rec }
	r.rows = func() int { return 1 }
	return r
}

// NewRow always fails: a Record cannot grow.
func (r *Record[T]) NewRow() (int, error) {
	return 0, ErrFixedSize.Errorf("cannot add a row to a single record")
}

// IsFixedSize returns true.
func (r *Record[T]) IsFixedSize() bool { return true }

// List adapts a caller-owned slice of records.
//
// Row indices remain valid only while nothing other than the List resizes
// the slice.
type List[T any] struct {
	columns[T]
	data *[]T
}

// NewList returns a growable table over the slice pointed to by data.
func NewList[T any](data *[]T) *List[T] {
	l := &List[T]{data: data}
	l.record = func(row int) *T { return &(*l.data)[row] }
	l.rows = func() int { return len(*l.data) }
	return l
}

// NewRow appends a zero record to the slice, applies every column default to
// it, and returns its index.
func (l *List[T]) NewRow() (int, error) {
	var zero T
	*l.data = append(*l.data, zero)
	row := len(*l.data) - 1
	l.SetDefaultValues(row)
	return row, nil
}

// IsFixedSize returns false.
func (l *List[T]) IsFixedSize() bool { return false }
