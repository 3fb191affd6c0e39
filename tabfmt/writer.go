package tabfmt

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/gradekit/tabkit/table"
)

// Write emits header, when not nil, and data to w in the fixture format.
// Cells holding their column default are skipped unless includeDefaults is
// set. Output depends only on the table contents.
func Write(w io.Writer, header, data table.Table, includeDefaults bool) error {
	bw := bufio.NewWriter(w)

	if header != nil {
		writeRecord(bw, header, 0, includeDefaults, false)
	}

	bw.WriteString("\ndata:\n")
	for row := 0; row < data.RowCount(); row++ {
		writeRecord(bw, data, row, includeDefaults, true)
	}

	// bufio.Writer keeps the first write error and returns it here.
	return bw.Flush()
}

func writeRecord(bw *bufio.Writer, t table.Table, row int, includeDefaults, dashed bool) {
	var written int
	for col := 0; col < t.ColumnCount(); col++ {
		if !includeDefaults && t.EqualsDefaultValue(row, col) {
			continue
		}
		if dashed {
			if written == 0 {
				bw.WriteString(" - ")
			} else {
				bw.WriteString("   ")
			}
		}
		bw.WriteString(t.ColumnName(col))
		bw.WriteString(": ")
		bw.WriteString(t.Value(row, col))
		bw.WriteByte('\n')
		written++
	}
	if dashed && written == 0 {
		// Keep the row so that reading the output back yields the same
		// number of rows.
		bw.WriteString(" -\n")
	}
}

// WriteFile writes comments, which should be lines starting with '#', then
// header and data to the file at path. The file is written to a temporary
// sibling first and renamed into place, so readers never observe a partial
// file.
func WriteFile(path string, header, data table.Table, includeDefaults bool, comments string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0o644)

	if err := writeTo(tmp, header, data, includeDefaults, comments); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func writeTo(w io.Writer, header, data table.Table, includeDefaults bool, comments string) error {
	if comments != "" {
		if _, err := io.WriteString(w, comments); err != nil {
			return err
		}
		if comments[len(comments)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return Write(w, header, data, includeDefaults)
}
