package main

import (
	"fmt"
	"strings"

	"github.com/gradekit/tabkit/codec"
	"github.com/gradekit/tabkit/grading"
	"github.com/gradekit/tabkit/segment"
	"github.com/gradekit/tabkit/table"
)

// record is the row type of every table the command builds. Columns named on
// the command line live in cells; grading columns live in the embedded
// Problem.
type record struct {
	grading.Problem
	cells map[string]interface{}
}

func problemOf(r *record) *grading.Problem { return &r.Problem }

// cell returns an accessor for the named cell, creating it on first use.
func cell[C any](name string) table.Accessor[record, C] {
	return func(r *record) *C {
		if r.cells == nil {
			r.cells = make(map[string]interface{})
		}
		if p, ok := r.cells[name].(*C); ok {
			return p
		}
		p := new(C)
		r.cells[name] = p
		return p
	}
}

type column struct {
	name  string
	field table.Field[record]
}

// parseSchema parses a comma separated list of column declarations of the
// form name:type or name:type=default, where type is one of int, bool,
// string or ints.
func parseSchema(text string) ([]column, error) {
	var columns []column

	s := segment.New(text)
	if s.Trim(); s.IsEmpty() {
		return nil, nil
	}

	var decl segment.Segment
	for s.Split(',', &decl) {
		var name segment.Segment
		decl.Split(':', &name)
		name.Trim()
		if name.IsEmpty() {
			return nil, fmt.Errorf("column declaration without a name: %q", text)
		}

		var kind segment.Segment
		hasDefault := decl.CountChars('=') > 0
		decl.Split('=', &kind)
		kind.Trim()

		f, err := newField(name.String(), kind.String(), decl, hasDefault)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name.String(), err)
		}
		columns = append(columns, column{name: name.String(), field: f})
	}

	return columns, nil
}

func newField(name, kind string, def segment.Segment, hasDefault bool) (table.Field[record], error) {
	switch strings.ToLower(kind) {
	case "int":
		if !hasDefault {
			return table.Int(cell[int](name)), nil
		}
		v, err := codec.DecodeInt(def)
		if err != nil {
			return nil, err
		}
		return table.Int(cell[int](name), v), nil
	case "bool":
		var v bool
		if hasDefault {
			var err error
			if v, err = codec.DecodeBool(def); err != nil {
				return nil, err
			}
		}
		return table.Bool(cell[bool](name), v), nil
	case "string":
		var v string
		if hasDefault {
			var err error
			if v, err = codec.DecodeString(def); err != nil {
				return nil, err
			}
		}
		return table.String(cell[string](name), v), nil
	case "ints":
		if hasDefault {
			return nil, fmt.Errorf("ints columns cannot declare a default")
		}
		return table.Ints(cell[[]int](name)), nil
	case "":
		return nil, fmt.Errorf("missing type")
	}
	return nil, fmt.Errorf("unknown type %q", kind)
}

// columnAdder is satisfied by both *table.Record[record] and
// *table.List[record].
type columnAdder interface {
	AddColumn(name string, f table.Field[record]) error
}

func addColumns(t columnAdder, columns []column) error {
	for _, c := range columns {
		if err := t.AddColumn(c.name, c.field); err != nil {
			return err
		}
	}
	return nil
}
