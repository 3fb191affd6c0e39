package main

import (
	"testing"

	"github.com/gradekit/tabkit/internal/ensure"
	"github.com/gradekit/tabkit/segment"
	"github.com/gradekit/tabkit/table"
)

func TestParseSchemaEmpty(t *testing.T) {
	cols, err := parseSchema("  ")
	ensure.Error(t, err)
	ensure.Int(t, len(cols), 0)
}

func TestParseSchema(t *testing.T) {
	cols, err := parseSchema("id:int, name:string=\"none\" ,flag:bool=yes,prices:ints,limit:int=10")
	ensure.Error(t, err)

	var names []string
	for _, c := range cols {
		names = append(names, c.name)
	}
	ensure.Strings(t, names, []string{"id", "name", "flag", "prices", "limit"})

	var rows []record
	l := table.NewList(&rows)
	ensure.Error(t, addColumns(l, cols))

	row, err := l.NewRow()
	ensure.Error(t, err)

	var got []string
	for col := 0; col < l.ColumnCount(); col++ {
		got = append(got, l.Value(row, col))
	}
	ensure.Strings(t, got, []string{"-1", `"none"`, "yes", "[]", "10"})
}

func TestParseSchemaErrors(t *testing.T) {
	cases := map[string]string{
		"id":              "missing type",
		"id:float":        "unknown type",
		":int":            "without a name",
		"id:int,":         "without a name",
		"id:int=x":        "invalid integer",
		"flag:bool=maybe": "invalid boolean",
		"name:string=x":   "quoted",
		"p:ints=[]":       "cannot declare a default",
	}
	for text, want := range cases {
		_, err := parseSchema(text)
		ensure.Error(t, err, want)
	}
}

func TestCellsAreIndependent(t *testing.T) {
	cols, err := parseSchema("a:int,b:int")
	ensure.Error(t, err)

	var rows []record
	l := table.NewList(&rows)
	ensure.Error(t, addColumns(l, cols))
	l.NewRow()
	l.NewRow()

	ensure.Error(t, l.SetValue(0, 0, segment.New("1")))
	ensure.Error(t, l.SetValue(0, 1, segment.New("2")))
	ensure.Error(t, l.SetValue(1, 0, segment.New("3")))

	ensure.Strings(t, []string{l.Value(0, 0), l.Value(0, 1), l.Value(1, 0), l.Value(1, 1)}, []string{"1", "2", "3", "-1"})
}

func TestDuplicateSchemaColumn(t *testing.T) {
	cols, err := parseSchema("a:int,A:bool")
	ensure.Error(t, err)

	var rows []record
	ensure.Error(t, addColumns(table.NewList(&rows), cols), "duplicate")
}
