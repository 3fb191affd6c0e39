package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gradekit/tabkit/tabfmt"
	"github.com/karrick/golf"
	"github.com/karrick/gologs"
)

var (
	ProgramName            = "tabkit"
	ProgramOneLineSummary  = "Check, print and grade two section fixture files"
	ProgramLongDescription = `Commands:

  check FILE...           parse every FILE against the -H and -D schemas
  columns FILE            print the data section of FILE as aligned columns
  grade FIXTURE ANSWERS   score the answers recorded in ANSWERS against FIXTURE

A schema is a comma separated list of name:type or name:type=default, where
type is int, bool, string or ints.
`
)

var (
	optHeaderSchema = golf.StringP('H', "header", "", "header columns, e.g. id:int,student_name:string")
	optDataSchema   = golf.StringP('D', "data", "", "data columns, e.g. problem:int,prices:ints")
	optExitOnError  = golf.BoolP('x', "exit-on-error", false, "print a diagnostic and exit at the first parse error")
	optContext      = golf.Int("context", 0, "show N input lines in exit-on-error diagnostics")
	optVerbose      = golf.BoolP('v', "verbose", false, "log progress")
	optDebug        = golf.BoolP('g', "debug", false, "log every input line")

	optDelimiter    = golf.StringP('d', "delimiter", "  ", "output column delimiter")
	optLeftJustify  = golf.BoolP('l', "left", false, "left-justify all columns")
	optRightJustify = golf.BoolP('r', "right", false, "right-justify all columns")
	optSkipHeader   = golf.BoolP('s', "skip-header", false, "do not print column names")

	optSet      = golf.Int("set", -1, "expected problem set number")
	optStudent  = golf.StringP('n', "student", "", "student name recorded in the result log")
	optOutput   = golf.StringP('o', "output", "", "write the result log to this file")
	optComments = golf.StringP('c', "comments", "", "comma separated files copied to the top of the result log")
	optDefaults = golf.BoolP('a', "all", false, "write cells that hold their default value")
)

func main() {
	golf.Parse()

	log, err := gologs.New(os.Stderr, gologs.DefaultCommandFormat)
	if err != nil {
		bail(err)
	}
	switch {
	case *optDebug:
		log.SetDebug()
	case *optVerbose:
		log.SetVerbose()
	}

	if err := cmd(golf.Args(), os.Stdout, log); err != nil {
		bail(err)
	}
}

func bail(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", ProgramName, err)
	os.Exit(1)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%s: %s\n\nusage: %s [options] COMMAND ARGS...\n\n%s", ProgramName, ProgramOneLineSummary, ProgramName, ProgramLongDescription)
}

func cmd(args []string, stdout io.Writer, log *gologs.Logger) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return fmt.Errorf("missing command")
	}

	opts := &tabfmt.Options{ExitOnError: *optExitOnError, Context: *optContext, Log: log}

	switch command, args := args[0], args[1:]; command {
	case "check":
		return check(args, stdout, opts, *optHeaderSchema, *optDataSchema)
	case "columns":
		lo := layout{delimiter: *optDelimiter, skipHeader: *optSkipHeader}
		switch {
		case *optLeftJustify:
			lo.justify = justifyLeft
		case *optRightJustify:
			lo.justify = justifyRight
		}
		return columns(args, stdout, opts, *optHeaderSchema, *optDataSchema, lo)
	case "grade":
		g := gradeOptions{
			set:             *optSet,
			student:         *optStudent,
			dataSchema:      *optDataSchema,
			output:          *optOutput,
			includeDefaults: *optDefaults,
		}
		if *optComments != "" {
			g.comments = strings.Split(*optComments, ",")
		}
		return grade(args, stdout, opts, g)
	case "help":
		usage(stdout)
		return nil
	default:
		return fmt.Errorf("unknown command: %q", command)
	}
}
