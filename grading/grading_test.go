package grading

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gradekit/tabkit/internal/ensure"
	"github.com/gradekit/tabkit/table"
	"github.com/gradekit/tabkit/tabfmt"
	"github.com/karrick/gologs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockProblem struct {
	Problem
	Prices []int
	Fee    int
}

func problemOf(p *stockProblem) *Problem { return &p.Problem }

func newStockTable(pp *[]stockProblem) *table.List[stockProblem] {
	l := table.NewList(pp)
	AddProblemColumns(l, problemOf)
	l.AddColumn("prices", table.Ints(func(p *stockProblem) *[]int { return &p.Prices }))
	l.AddColumn("fee", table.Int(func(p *stockProblem) *int { return &p.Fee }))
	return l
}

const fixture = `# Problem set 4
problem_set_number: 4
problems: 2
data:
 - problem: 1
   correct_answer: 5
   prices: [1,3,2]
   fee: 1
 - problem: 2
   correct_answer: 7
   prices: []
   fee: 0
`

func load(t *testing.T) (ProblemSetHeader, []stockProblem) {
	t.Helper()
	h := NewHeader()
	var pp []stockProblem

	hr := table.NewRecord(&h)
	require.NoError(t, AddHeaderColumns(hr))
	require.NoError(t, tabfmt.Read(strings.NewReader(fixture), hr, newStockTable(&pp), nil))
	return h, pp
}

func TestLoadFixture(t *testing.T) {
	h, pp := load(t)
	ensure.Int(t, h.ID, 4)
	ensure.Int(t, h.ProblemCount, 2)
	ensure.Int(t, h.Time, -1)
	require.Len(t, pp, 2)
	assert.Equal(t, Problem{ID: 2, CorrectAnswer: 7}, pp[1].Problem)
	assert.Equal(t, []int{1, 3, 2}, pp[0].Prices)
}

func TestAddHeaderColumnsTwice(t *testing.T) {
	h := NewHeader()
	r := table.NewRecord(&h)
	require.NoError(t, AddHeaderColumns(r))
	ensure.Error(t, AddHeaderColumns(r), "problem_set_number")
}

func TestPreprocess(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	now = func() time.Time { return start }
	defer func() { now = time.Now }()

	t.Run("ok", func(t *testing.T) {
		h, pp := load(t)
		h.StudentName = "A B"
		require.NoError(t, Preprocess(4, pp, problemOf, &h))
		assert.Equal(t, start, h.Start)
	})
	t.Run("wrong set", func(t *testing.T) {
		h, pp := load(t)
		h.StudentName = "A B"
		ensure.Error(t, Preprocess(5, pp, problemOf, &h), "wrong problem set")
	})
	t.Run("count mismatch", func(t *testing.T) {
		h, pp := load(t)
		h.StudentName = "A B"
		ensure.Error(t, Preprocess(4, pp[:1], problemOf, &h), "corrupted")
	})
	t.Run("no name", func(t *testing.T) {
		h, pp := load(t)
		ensure.Error(t, Preprocess(4, pp, problemOf, &h), "student name")
	})
	t.Run("ids out of order", func(t *testing.T) {
		h, pp := load(t)
		h.StudentName = "A B"
		pp[0].ID, pp[1].ID = 2, 1
		ensure.Error(t, Preprocess(4, pp, problemOf, &h), "problem 1 is numbered 2")
	})
}

func TestProcessResults(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h, pp := load(t)
	h.Start = start
	now = func() time.Time { return start.Add(1234567 * time.Microsecond) }
	defer func() { now = time.Now }()

	pp[0].StudentAnswer = 5
	pp[1].StudentAnswer = 8

	var out bytes.Buffer
	log, err := gologs.New(&out, "{message}")
	require.NoError(t, err)
	log.SetVerbose()

	mistakes := ProcessResults(pp, problemOf, &h, log)
	assert.Equal(t, []Mistake{{Problem: 2, CorrectAnswer: 7, StudentAnswer: 8}}, mistakes)
	ensure.Int(t, h.TestMistakes, 1)
	ensure.Int(t, h.Time, 1235)
	assert.Equal(t, "problem 2: got 8, want 7\nproblem set 4: 1 mistake(s) in 1235 ms\n", out.String())
}

func TestSummarize(t *testing.T) {
	t.Run("mistakes", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summarize(&buf, []Mistake{{Problem: 2, CorrectAnswer: 7, StudentAnswer: 8}}))
		want := "\nMistake in problem #2.\nCorrect answer: 7.\nYour answer: 8.\n" +
			"=========================\nYour algorithm made 1 mistake(s).\n"
		assert.Equal(t, want, buf.String())
	})
	t.Run("none", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Summarize(&buf, nil))
		assert.Contains(t, buf.String(), "Congratulations")
	})
}

func TestWriteResultLog(t *testing.T) {
	h, pp := load(t)
	h.StudentName = "A B"
	h.Time = 12
	h.TestMistakes = 0
	pp[0].StudentAnswer = 5
	pp[1].StudentAnswer = 7

	hr := table.NewRecord(&h)
	require.NoError(t, AddHeaderColumns(hr))
	answers := table.NewList(&pp)
	require.NoError(t, AddAnswerColumns(answers, problemOf))

	var buf bytes.Buffer
	require.NoError(t, tabfmt.Write(&buf, hr, answers, false))
	want := "problem_set_number: 4\n" +
		"student_name: \"A B\"\n" +
		"problems: 2\n" +
		"time: 12\n" +
		"test_mistakes: 0\n" +
		"\n" +
		"data:\n" +
		" - problem: 1\n" +
		"   student_answer: 5\n" +
		" - problem: 2\n" +
		"   student_answer: 7\n"
	assert.Equal(t, want, buf.String())
}
