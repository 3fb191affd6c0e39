package table

import (
	"testing"

	"github.com/gradekit/tabkit/internal/ensure"
	"github.com/gradekit/tabkit/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type header struct {
	ID          int
	StudentName string
	Problems    int
	Verbose     bool
}

type problem struct {
	ID     int
	Answer int
	Prices []int
}

func newHeader(h *header) *Record[header] {
	r := NewRecord(h)
	r.AddColumn("id", Int(func(h *header) *int { return &h.ID }))
	r.AddColumn("Student_Name", String(func(h *header) *string { return &h.StudentName }, ""))
	r.AddColumn("problems", Int(func(h *header) *int { return &h.Problems }, 0))
	r.AddColumn("verbose", Bool(func(h *header) *bool { return &h.Verbose }, false))
	return r
}

func newProblems(pp *[]problem) *List[problem] {
	l := NewList(pp)
	l.AddColumn("problem", Int(func(p *problem) *int { return &p.ID }))
	l.AddColumn("answer", Int(func(p *problem) *int { return &p.Answer }, 0))
	l.AddColumn("prices", Ints(func(p *problem) *[]int { return &p.Prices }))
	return l
}

func TestRecordColumns(t *testing.T) {
	var h header
	r := newHeader(&h)

	ensure.Int(t, r.ColumnCount(), 4)
	ensure.Int(t, r.RowCount(), 1)
	assert.True(t, r.IsFixedSize())

	var names []string
	for i := 0; i < r.ColumnCount(); i++ {
		names = append(names, r.ColumnName(i))
	}
	ensure.Strings(t, names, []string{"id", "Student_Name", "problems", "verbose"})
}

func TestAddColumnRejectsDuplicates(t *testing.T) {
	var h header
	r := newHeader(&h)
	err := r.AddColumn("STUDENT_NAME", String(func(h *header) *string { return &h.StudentName }, ""))
	ensure.Error(t, err, "STUDENT_NAME")
	ensure.Int(t, r.ColumnCount(), 4)
}

func TestColumnIndexIgnoresCase(t *testing.T) {
	var h header
	r := newHeader(&h)
	for _, name := range []string{"Student_Name", "student_name", "STUDENT_NAME", "sTuDeNt_NaMe"} {
		col, ok := r.ColumnIndex(name)
		if !ok {
			t.Errorf("%q: GOT: not found; WANT: found", name)
			continue
		}
		ensure.Int(t, col, 1)
	}
	_, ok := r.ColumnIndex("student")
	assert.False(t, ok)
}

func TestRecordValues(t *testing.T) {
	h := header{ID: 4}
	r := newHeader(&h)

	require.NoError(t, r.SetValueByName(0, "student_name", segment.New(` "A B" `)))
	assert.Equal(t, "A B", h.StudentName)

	require.NoError(t, r.SetValue(0, 3, segment.New("yes")))
	assert.True(t, h.Verbose)

	got, err := r.ValueByName(0, "ID")
	require.NoError(t, err)
	assert.Equal(t, "4", got)
	assert.Equal(t, `"A B"`, r.Value(0, 1))
	assert.Equal(t, "yes", r.Value(0, 3))
}

func TestSetValueFailureLeavesField(t *testing.T) {
	h := header{ID: 7}
	r := newHeader(&h)

	err := r.SetValueByName(0, "id", segment.New("seven"))
	ensure.Error(t, err, `column "id"`, "invalid integer")
	ensure.Int(t, h.ID, 7)

	err = r.SetValueByName(0, "missing", segment.New("1"))
	ensure.Error(t, err, `"missing"`)

	_, err = r.ValueByName(0, "missing")
	ensure.Error(t, err, `"missing"`)
}

func TestRecordDefaults(t *testing.T) {
	h := header{ID: 3, StudentName: "x", Problems: 9, Verbose: true}
	r := newHeader(&h)

	assert.False(t, r.EqualsDefaultValue(0, 0))
	r.SetDefaultValues(0)
	assert.Equal(t, header{ID: -1}, h)
	for col := 0; col < r.ColumnCount(); col++ {
		assert.True(t, r.EqualsDefaultValue(0, col), r.ColumnName(col))
	}
}

func TestRecordCannotGrow(t *testing.T) {
	var h header
	r := newHeader(&h)
	_, err := r.NewRow()
	ensure.Error(t, err, "cannot add a row")
	ensure.Int(t, r.RowCount(), 1)
}

func TestListNewRow(t *testing.T) {
	var pp []problem
	l := newProblems(&pp)
	assert.False(t, l.IsFixedSize())
	ensure.Int(t, l.RowCount(), 0)

	row, err := l.NewRow()
	require.NoError(t, err)
	ensure.Int(t, row, 0)
	row, err = l.NewRow()
	require.NoError(t, err)
	ensure.Int(t, row, 1)

	ensure.Int(t, l.RowCount(), 2)
	assert.Equal(t, problem{ID: -1, Answer: 0}, pp[1])
	assert.Equal(t, "[]", l.Value(1, 2))
	assert.True(t, l.EqualsDefaultValue(1, 2))

	require.NoError(t, l.SetValueByName(1, "prices", segment.New("[3,1,2]")))
	require.NoError(t, l.SetValueByName(1, "PROBLEM", segment.New("2")))
	assert.Equal(t, problem{ID: 2, Prices: []int{3, 1, 2}}, pp[1])
	assert.False(t, l.EqualsDefaultValue(1, 2))
	assert.Equal(t, "[3,1,2]", l.Value(1, 2))
}

func TestListSharesCallerSlice(t *testing.T) {
	pp := []problem{{ID: 1, Answer: 5}}
	l := newProblems(&pp)
	ensure.Int(t, l.RowCount(), 1)
	assert.Equal(t, "5", l.Value(0, 1))

	pp = append(pp, problem{ID: 2, Answer: 7})
	ensure.Int(t, l.RowCount(), 2)
	assert.Equal(t, "7", l.Value(1, 1))
}

func TestIndexOutOfRangePanics(t *testing.T) {
	var pp []problem
	l := newProblems(&pp)

	assert.Panics(t, func() { l.Value(0, 0) })
	l.NewRow()
	assert.Panics(t, func() { l.Value(0, 3) })
	assert.Panics(t, func() { l.ColumnName(-1) })
	assert.NotPanics(t, func() { l.Value(0, 2) })
}

func TestTableInterface(t *testing.T) {
	var h header
	var pp []problem
	for _, tbl := range []Table{newHeader(&h), newProblems(&pp)} {
		assert.NotZero(t, tbl.ColumnCount())
	}
}
