// Package grading checks a problem set loaded from a fixture and scores the
// answers recorded against it.
package grading

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gradekit/tabkit/table"
	"github.com/karrick/gologs"
	"github.com/zeebo/errs/v2"
)

// ErrInvalid classifies problem sets that fail validation.
var ErrInvalid = errs.Tag("invalid problem set")

var now = time.Now

// ProblemSetHeader is the header record of a fixture or a result log.
type ProblemSetHeader struct {
	ID           int
	ProblemCount int
	TestMistakes int
	Time         int // milliseconds
	StudentName  string
	Start        time.Time
}

// NewHeader returns a header holding the same defaults as an empty fixture.
func NewHeader() ProblemSetHeader {
	return ProblemSetHeader{ID: -1, TestMistakes: -1, Time: -1}
}

// Problem holds the columns every problem record has.
type Problem struct {
	ID            int
	CorrectAnswer int
	StudentAnswer int
}

// AddHeaderColumns registers the standard header columns on r.
func AddHeaderColumns(r *table.Record[ProblemSetHeader]) error {
	for _, c := range []struct {
		name  string
		field table.Field[ProblemSetHeader]
	}{
		{"problem_set_number", table.Int(func(h *ProblemSetHeader) *int { return &h.ID })},
		{"student_name", table.String(func(h *ProblemSetHeader) *string { return &h.StudentName }, "")},
		{"problems", table.Int(func(h *ProblemSetHeader) *int { return &h.ProblemCount })},
		{"time", table.Int(func(h *ProblemSetHeader) *int { return &h.Time })},
		{"test_mistakes", table.Int(func(h *ProblemSetHeader) *int { return &h.TestMistakes })},
	} {
		if err := r.AddColumn(c.name, c.field); err != nil {
			return err
		}
	}
	return nil
}

// AddProblemColumns registers the columns a fixture supplies for every
// problem: its number and the expected answer. get returns the Problem held
// by a record.
func AddProblemColumns[T any](l *table.List[T], get func(*T) *Problem) error {
	if err := l.AddColumn("problem", table.Int(func(r *T) *int { return &get(r).ID })); err != nil {
		return err
	}
	return l.AddColumn("correct_answer", table.Int(func(r *T) *int { return &get(r).CorrectAnswer }))
}

// AddAnswerColumns registers the columns of a result log: the problem number
// and the answer that was produced.
func AddAnswerColumns[T any](l *table.List[T], get func(*T) *Problem) error {
	if err := l.AddColumn("problem", table.Int(func(r *T) *int { return &get(r).ID })); err != nil {
		return err
	}
	return l.AddColumn("student_answer", table.Int(func(r *T) *int { return &get(r).StudentAnswer }))
}

// Preprocess verifies that problems and header describe problem set setID
// with sequentially numbered problems and a student name, then records the
// start time used by ProcessResults.
func Preprocess[T any](setID int, problems []T, get func(*T) *Problem, header *ProblemSetHeader) error {
	if header.ID != setID {
		return ErrInvalid.Errorf("wrong problem set: got %d, want %d; check the problem set number", header.ID, setID)
	}
	if header.ProblemCount != len(problems) {
		return ErrInvalid.Errorf("input file is corrupted: header announces %d problems, found %d", header.ProblemCount, len(problems))
	}
	if header.StudentName == "" {
		return ErrInvalid.Errorf("student name is empty")
	}
	for i := range problems {
		if id := get(&problems[i]).ID; id != i+1 {
			return ErrInvalid.Errorf("input file is corrupted: problem %d is numbered %d", i+1, id)
		}
	}

	header.Start = now()
	return nil
}

// Mistake describes one problem whose answer differs from the expected one.
type Mistake struct {
	Problem       int
	CorrectAnswer int
	StudentAnswer int
}

// ProcessResults stores in header the time elapsed since Preprocess and the
// number of wrong answers, and returns the mistakes in problem order. log may
// be nil.
func ProcessResults[T any](problems []T, get func(*T) *Problem, header *ProblemSetHeader, log *gologs.Logger) []Mistake {
	elapsed := now().Sub(header.Start)
	header.Time = int(math.Round(float64(elapsed) / float64(time.Millisecond)))

	var mistakes []Mistake
	for i := 0; i < header.ProblemCount && i < len(problems); i++ {
		p := get(&problems[i])
		if p.StudentAnswer == p.CorrectAnswer {
			continue
		}
		mistakes = append(mistakes, Mistake{Problem: i + 1, CorrectAnswer: p.CorrectAnswer, StudentAnswer: p.StudentAnswer})
		if log != nil {
			_ = log.Verbose("problem %d: got %d, want %d", i+1, p.StudentAnswer, p.CorrectAnswer)
		}
	}

	header.TestMistakes = len(mistakes)
	if log != nil {
		_ = log.Info("problem set %d: %d mistake(s) in %d ms", header.ID, header.TestMistakes, header.Time)
	}
	return mistakes
}

// Summarize writes a human readable report of mistakes to w.
func Summarize(w io.Writer, mistakes []Mistake) error {
	ew := &errWriter{w: w}
	for _, m := range mistakes {
		fmt.Fprintf(ew, "\nMistake in problem #%d.\n", m.Problem)
		fmt.Fprintf(ew, "Correct answer: %d.\n", m.CorrectAnswer)
		fmt.Fprintf(ew, "Your answer: %d.\n", m.StudentAnswer)
		fmt.Fprint(ew, "=========================")
	}
	if len(mistakes) > 0 {
		fmt.Fprintf(ew, "\nYour algorithm made %d mistake(s).\n", len(mistakes))
	} else {
		fmt.Fprint(ew, "Your algorithm solved all test problems correctly. Congratulations!\n")
	}
	return ew.err
}

// errWriter latches the first write error so a sequence of writes can be
// checked once.
type errWriter struct {
	err error
	w   io.Writer
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	var n int
	n, e.err = e.w.Write(p)
	return n, e.err
}
