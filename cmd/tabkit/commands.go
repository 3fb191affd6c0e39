package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gradekit/tabkit/grading"
	"github.com/gradekit/tabkit/table"
	"github.com/gradekit/tabkit/tabfmt"
	"github.com/karrick/gorill"
)

// newTables builds a header record and a data list from the two schemas. A
// nil header is returned when headerSchema declares no columns.
func newTables(headerSchema, dataSchema string, head *record, rows *[]record) (table.Table, *table.List[record], error) {
	hc, err := parseSchema(headerSchema)
	if err != nil {
		return nil, nil, fmt.Errorf("header schema: %w", err)
	}
	dc, err := parseSchema(dataSchema)
	if err != nil {
		return nil, nil, fmt.Errorf("data schema: %w", err)
	}

	var header table.Table
	if len(hc) > 0 {
		hr := table.NewRecord(head)
		if err := addColumns(hr, hc); err != nil {
			return nil, nil, fmt.Errorf("header schema: %w", err)
		}
		header = hr
	}

	data := table.NewList(rows)
	if err := addColumns(data, dc); err != nil {
		return nil, nil, fmt.Errorf("data schema: %w", err)
	}
	return header, data, nil
}

// check parses every file and reports each result. It returns an error when
// any file fails.
func check(args []string, stdout io.Writer, opts *tabfmt.Options, headerSchema, dataSchema string) error {
	if len(args) == 0 {
		return errors.New("check: no files")
	}

	var failed int
	for _, path := range args {
		var head record
		var rows []record

		header, data, err := newTables(headerSchema, dataSchema, &head, &rows)
		if err != nil {
			return err
		}

		if err := tabfmt.Load(path, header, data, opts); err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "%s: ok, %d record(s)\n", path, len(rows))
	}

	if failed > 0 {
		return fmt.Errorf("check: %d of %d file(s) failed", failed, len(args))
	}
	return nil
}

// columns prints the header cells of one file as name: value lines, then its
// data section as aligned columns.
func columns(args []string, stdout io.Writer, opts *tabfmt.Options, headerSchema, dataSchema string, lo layout) error {
	if len(args) != 1 {
		return errors.New("columns: expected exactly one file")
	}

	var head record
	var rows []record

	header, data, err := newTables(headerSchema, dataSchema, &head, &rows)
	if err != nil {
		return err
	}
	if err := tabfmt.Load(args[0], header, data, opts); err != nil {
		return err
	}

	if header != nil {
		for col := 0; col < header.ColumnCount(); col++ {
			if header.EqualsDefaultValue(0, col) {
				continue
			}
			fmt.Fprintf(stdout, "%s: %s\n", header.ColumnName(col), header.Value(0, col))
		}
		fmt.Fprintln(stdout)
	}

	names, cells := grid(data)
	return columnize(stdout, names, cells, lo)
}

type gradeOptions struct {
	set             int
	student         string
	dataSchema      string // extra fixture columns besides problem and correct_answer
	output          string
	comments        []string
	includeDefaults bool
}

// grade loads a fixture and a file of answers, scores the answers, prints the
// summary and optionally writes a result log.
func grade(args []string, stdout io.Writer, opts *tabfmt.Options, g gradeOptions) error {
	if len(args) != 2 {
		return errors.New("grade: expected FIXTURE and ANSWERS")
	}
	fixturePath, answersPath := args[0], args[1]

	header := grading.NewHeader()
	hr := table.NewRecord(&header)
	if err := grading.AddHeaderColumns(hr); err != nil {
		return err
	}

	var problems []record
	fixture := table.NewList(&problems)
	if err := grading.AddProblemColumns(fixture, problemOf); err != nil {
		return err
	}
	extra, err := parseSchema(g.dataSchema)
	if err != nil {
		return fmt.Errorf("data schema: %w", err)
	}
	if err := addColumns(fixture, extra); err != nil {
		return fmt.Errorf("data schema: %w", err)
	}

	if err := tabfmt.Load(fixturePath, hr, fixture, opts); err != nil {
		return fmt.Errorf("%s: %w", fixturePath, err)
	}

	answerHeader := grading.NewHeader()
	ahr := table.NewRecord(&answerHeader)
	if err := grading.AddHeaderColumns(ahr); err != nil {
		return err
	}
	var answers []grading.Problem
	al := table.NewList(&answers)
	if err := grading.AddAnswerColumns(al, func(p *grading.Problem) *grading.Problem { return p }); err != nil {
		return err
	}
	if err := tabfmt.Load(answersPath, ahr, al, opts); err != nil {
		return fmt.Errorf("%s: %w", answersPath, err)
	}

	switch {
	case g.student != "":
		header.StudentName = g.student
	case header.StudentName == "":
		header.StudentName = answerHeader.StudentName
	}

	if err := grading.Preprocess(g.set, problems, problemOf, &header); err != nil {
		return err
	}
	if err := mergeAnswers(problems, answers); err != nil {
		return fmt.Errorf("%s: %w", answersPath, err)
	}

	mistakes := grading.ProcessResults(problems, problemOf, &header, opts.Log)
	if err := grading.Summarize(stdout, mistakes); err != nil {
		return err
	}

	if g.output == "" {
		return nil
	}

	var comments string
	if len(g.comments) > 0 {
		buf, err := io.ReadAll(&gorill.FilesReader{Pathnames: g.comments})
		if err != nil {
			return err
		}
		comments = string(buf)
	}

	results := table.NewList(&problems)
	if err := grading.AddAnswerColumns(results, problemOf); err != nil {
		return err
	}
	return tabfmt.WriteFile(g.output, hr, results, g.includeDefaults, comments)
}

// mergeAnswers copies each answer into the problem with the same number.
// Problems without an answer are left at the default of -1.
func mergeAnswers(problems []record, answers []grading.Problem) error {
	for i := range problems {
		problems[i].StudentAnswer = table.DefaultInt
	}
	for _, a := range answers {
		if a.ID < 1 || a.ID > len(problems) {
			return fmt.Errorf("answer for unknown problem %d", a.ID)
		}
		problems[a.ID-1].StudentAnswer = a.StudentAnswer
	}
	return nil
}
