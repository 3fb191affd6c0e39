package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/gradekit/tabkit/table"
	"github.com/karrick/goutfs"
)

type justification int

const (
	justifyAuto justification = iota
	justifyLeft
	justifyRight
)

type layout struct {
	delimiter  string
	justify    justification
	skipHeader bool // omit the line of column names
}

// grid returns the column names and the text of every cell of t.
func grid(t table.Table) ([]string, [][]string) {
	names := make([]string, t.ColumnCount())
	for col := range names {
		names[col] = t.ColumnName(col)
	}
	rows := make([][]string, t.RowCount())
	for row := range rows {
		fields := make([]string, len(names))
		for col := range fields {
			fields[col] = t.Value(row, col)
		}
		rows[row] = fields
	}
	return names, rows
}

// columnize writes names and rows as aligned columns. Widths are measured in
// characters rather than bytes. With automatic justification, a column is
// right-justified when every one of its cells is a number.
func columnize(w io.Writer, names []string, rows [][]string, lo layout) error {
	widths := make(map[int]int, len(names))
	rightJustifys := make(map[int]bool, len(names))

	var lines [][]string
	if !lo.skipHeader {
		lines = append(lines, names)
	}
	lines = append(lines, rows...)

	for li, fields := range lines {
		for i, field := range fields {
			if width := goutfs.NewString(field).Len(); width > widths[i] {
				widths[i] = width
			}
			if lo.justify != justifyAuto || (!lo.skipHeader && li == 0) {
				continue
			}
			// NOTE: A column stays right-justified only while every field
			// observed in it has been a number.
			if rj, ok := rightJustifys[i]; !ok || rj {
				_, err := strconv.ParseFloat(field, 64)
				rightJustifys[i] = err == nil
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, fields := range lines {
		d := lo.delimiter
		for i, field := range fields {
			if i == len(fields)-1 {
				d = "" // do not emit trailing delimiter
			}
			width := widths[i]

			switch lo.justify {
			case justifyLeft:
				left(bw, width, field, d)
			case justifyRight:
				right(bw, width, field, d)
			default:
				if rightJustifys[i] {
					right(bw, width, field, d)
				} else {
					left(bw, width, field, d)
				}
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func padding(width int, field string) string {
	if n := width - goutfs.NewString(field).Len(); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}

func left(bw *bufio.Writer, width int, field, delimiter string) {
	bw.WriteString(field)
	if delimiter != "" {
		bw.WriteString(padding(width, field))
		bw.WriteString(delimiter)
	}
}

func right(bw *bufio.Writer, width int, field, delimiter string) {
	bw.WriteString(padding(width, field))
	bw.WriteString(field)
	bw.WriteString(delimiter)
}
