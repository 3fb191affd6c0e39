// Package lineparse drives a line oriented grammar over a file or reader.
//
// A Parser reads its input one line at a time, skips blank lines, and hands
// every other line to a Handler. The first error stops the parse. When
// ExitOnError is set the parser prints a diagnostic and terminates the
// process instead of returning; this is meant only for the outermost layer
// of a command line program.
package lineparse

import (
	"fmt"
	"io"
	"os"

	"github.com/gradekit/tabkit/segment"
	"github.com/karrick/gobls"
	"github.com/karrick/gologs"
	"github.com/zeebo/errs/v2"
)

// ErrOpen classifies failures to open the input file.
var ErrOpen = errs.Tag("cannot open input file")

// osExit is replaced by tests.
var osExit = os.Exit

// State is the life cycle of a Parser.
type State int

const (
	NotStarted State = iota
	Parsing
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Parsing:
		return "parsing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Handler receives the lines of one parse.
type Handler interface {
	// PreParse is called once before the first line is read.
	PreParse() error

	// ParseLine is called with every non-blank line. The segment is not
	// trimmed.
	ParseLine(line segment.Segment) error

	// PostParse is called once after the final line when no error occurred.
	PostParse() error
}

// LineFunc adapts a function to a Handler with no pre or post step.
type LineFunc func(line segment.Segment) error

func (f LineFunc) PreParse() error                      { return nil }
func (f LineFunc) ParseLine(line segment.Segment) error { return f(line) }
func (f LineFunc) PostParse() error                     { return nil }

// Error records where a parse stopped. Line is 0 for failures that are not
// tied to a line, such as an input file that cannot be opened.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Parser holds the state of one parse at a time. The zero value returns
// errors to its caller and logs nothing.
type Parser struct {
	// ExitOnError makes a failure print a diagnostic to Output and exit the
	// process with status 1.
	ExitOnError bool

	// Context is the number of input lines, ending with the failing one,
	// included in the ExitOnError diagnostic.
	Context int

	// Log receives progress and failure events. May be nil.
	Log *gologs.Logger

	// Output receives the ExitOnError diagnostic. Defaults to os.Stdout.
	Output io.Writer

	line  int
	state State
	err   error
	tail  *tailBuffer
}

// State returns where the most recent parse is in its life cycle.
func (p *Parser) State() State { return p.state }

// OK reports whether the most recent parse has not failed.
func (p *Parser) OK() bool { return p.state != Failed }

// Err returns the error that stopped the most recent parse, if any.
func (p *Parser) Err() error { return p.err }

// LineNumber returns the 1-based number of the line most recently read.
func (p *Parser) LineNumber() int { return p.line }

// ParseFile parses the file at path with h. The file is closed before
// ParseFile returns.
func (p *Parser) ParseFile(path string, h Handler) error {
	p.reset()

	fh, err := os.Open(path)
	if err != nil {
		return p.fail(ErrOpen.Errorf("cannot open input file: %v", err))
	}
	defer fh.Close()

	p.verbose("parsing %s", path)
	return p.parse(fh, h)
}

// Parse parses the lines of r with h.
func (p *Parser) Parse(r io.Reader, h Handler) error {
	p.reset()
	return p.parse(r, h)
}

func (p *Parser) reset() {
	p.line = 0
	p.state = NotStarted
	p.err = nil
	p.tail = nil
}

func (p *Parser) parse(r io.Reader, h Handler) error {
	tail, err := newTailBuffer(p.Context)
	if err != nil {
		return p.fail(err)
	}
	p.tail = tail
	p.state = Parsing

	if err := h.PreParse(); err != nil {
		return p.fail(err)
	}

	br := gobls.NewScanner(r)
	for br.Scan() {
		p.line++
		text := br.Text()

		blank := segment.New(text)
		if blank.Trim(); blank.IsEmpty() {
			continue
		}

		p.tail.Queue(numberedLine{number: p.line, text: text})
		p.debug("line %d: %s", p.line, text)

		if err := h.ParseLine(segment.New(text)); err != nil {
			return p.fail(err)
		}
	}
	if err := br.Err(); err != nil {
		return p.fail(err)
	}

	if err := h.PostParse(); err != nil {
		return p.fail(err)
	}

	p.state = Succeeded
	p.verbose("parsed %d lines", p.line)
	return nil
}

func (p *Parser) fail(err error) error {
	pe := &Error{Line: p.line, Err: err}
	p.state = Failed
	p.err = pe

	if p.Log != nil {
		_ = p.Log.Error("%v", pe)
	}

	if p.ExitOnError {
		p.diagnose(pe)
		osExit(1)
	}
	return pe
}

func (p *Parser) diagnose(pe *Error) {
	w := p.Output
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintf(w, "\n\nError: %v", pe.Err)
	if pe.Line == 0 {
		fmt.Fprint(w, "\n\n")
		return
	}
	fmt.Fprintf(w, "\nLine number: %d.\n\n", pe.Line)

	if p.tail == nil {
		return
	}
	for _, nl := range p.tail.Drain() {
		fmt.Fprintf(w, "%6d | %s\n", nl.number, nl.text)
	}
}

func (p *Parser) verbose(format string, args ...interface{}) {
	if p.Log != nil {
		_ = p.Log.Verbose(format, args...)
	}
}

func (p *Parser) debug(format string, args ...interface{}) {
	if p.Log != nil {
		_ = p.Log.Debug(format, args...)
	}
}
