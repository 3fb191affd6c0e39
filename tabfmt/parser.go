// Package tabfmt reads and writes the two section fixture format:
//
//	# comment
//	key: value
//	data:
//	 - column: value
//	   column: value
//	 - column: value
//
// Lines before "data:" set cells of the single header row. Each line that
// starts with "-" after "data:" opens a new row of the data table, and the
// key/value lines that follow set cells of that row.
package tabfmt

import (
	"io"

	"github.com/gradekit/tabkit/lineparse"
	"github.com/gradekit/tabkit/segment"
	"github.com/gradekit/tabkit/table"
	"github.com/karrick/gologs"
	"github.com/zeebo/errs/v2"
)

// ErrGrammar classifies lines that do not fit the format, including lines
// whose value cannot be stored in the addressed column.
var ErrGrammar = errs.Tag("grammar")

// Parser is a lineparse.Handler for the fixture format.
type Parser struct {
	header   table.Table
	data     table.Table
	inHeader bool
}

// NewParser returns a Parser that stores header lines in header and data
// lines in data. header may be nil, in which case any header line is an
// error. data must be able to grow.
func NewParser(header, data table.Table) (*Parser, error) {
	p := new(Parser)
	if err := p.SetHeader(header); err != nil {
		return nil, err
	}
	if err := p.SetTable(data); err != nil {
		return nil, err
	}
	return p, nil
}

// SetHeader replaces the header table. A non-nil header must have a row.
func (p *Parser) SetHeader(header table.Table) error {
	if header != nil && header.RowCount() == 0 {
		return errs.Errorf("header table has no row")
	}
	p.header = header
	return nil
}

// SetTable replaces the data table, which must be able to grow.
func (p *Parser) SetTable(data table.Table) error {
	if data == nil {
		return errs.Errorf("data table is required")
	}
	if data.IsFixedSize() {
		return errs.Errorf("data table cannot be fixed size")
	}
	p.data = data
	return nil
}

// PreParse starts every parse in the header section.
func (p *Parser) PreParse() error {
	p.inHeader = true
	return nil
}

// PostParse does nothing.
func (p *Parser) PostParse() error { return nil }

// ParseLine interprets one line of input.
func (p *Parser) ParseLine(s segment.Segment) error {
	s.Trim()
	if s.IsEmpty() {
		return nil
	}

	switch {
	case s.FirstChar() == '#':
		return nil
	case s.Match("data:", false):
		p.inHeader = false
		return nil
	case s.FirstChar() == '-':
		if p.inHeader {
			return ErrGrammar.Errorf("invalid entry in the header section")
		}
		if _, err := p.data.NewRow(); err != nil {
			return err
		}
		s.RemovePrefix(1)
		if s.Trim(); s.IsEmpty() {
			return nil
		}
	}

	var key segment.Segment
	s.Split(':', &key)
	key.Trim()
	s.Trim()

	if key.IsEmpty() || s.IsEmpty() {
		return ErrGrammar.Errorf("key or value is empty")
	}

	var err error
	if p.inHeader {
		if p.header == nil {
			return ErrGrammar.Errorf("unexpected header entry %q", key.String())
		}
		err = p.header.SetValueByName(0, key.String(), s)
	} else {
		row := p.data.RowCount() - 1
		if row < 0 {
			return ErrGrammar.Errorf("entry %q precedes the first record", key.String())
		}
		err = p.data.SetValueByName(row, key.String(), s)
	}
	if err != nil {
		return ErrGrammar.Errorf("cannot parse a line: %v", err)
	}
	return nil
}

// Options control Load and Read.
type Options struct {
	// ExitOnError terminates the process with a diagnostic on the first
	// error instead of returning it.
	ExitOnError bool

	// Context is the number of preceding lines shown in that diagnostic.
	Context int

	// Log receives parse events. May be nil.
	Log *gologs.Logger
}

func (o *Options) lineParser() *lineparse.Parser {
	if o == nil {
		return new(lineparse.Parser)
	}
	return &lineparse.Parser{ExitOnError: o.ExitOnError, Context: o.Context, Log: o.Log}
}

// Load parses the file at path into header and data. opts may be nil.
func Load(path string, header, data table.Table, opts *Options) error {
	p, err := NewParser(header, data)
	if err != nil {
		return err
	}
	return opts.lineParser().ParseFile(path, p)
}

// Read parses r into header and data. opts may be nil.
func Read(r io.Reader, header, data table.Table, opts *Options) error {
	p, err := NewParser(header, data)
	if err != nil {
		return err
	}
	return opts.lineParser().Parse(r, p)
}
