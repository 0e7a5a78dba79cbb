package driver

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/interpreter"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/logging"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/parser"
)

// RunOptions configure a single parse-then-evaluate pass.
type RunOptions struct {
	Stdout          io.Writer
	Stdin           io.Reader
	Diagnostics     io.Writer
	Logger          logrus.FieldLogger
	Metrics         metrics.Metrics
	DisableComments bool
}

func (o RunOptions) normalize() RunOptions {
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.NoOp()
	}
	return o
}

// Result is what a completed or failed run leaves behind.
type Result struct {
	Program     *ast.Program
	Diagnostics []interpreter.Diagnostic
}

// Parse parses src, timing the phase.
func Parse(src *Source, opts RunOptions) (*ast.Program, error) {
	opts = opts.normalize()
	t := opts.Metrics.Timer(metrics.ProgramParse)
	t.Start()
	prog, err := parser.Parse(strings.NewReader(src.Text), parser.Options{DisableComments: opts.DisableComments})
	elapsed := t.Stop()
	log := opts.Logger.WithFields(logrus.Fields{"source": src.Name, "elapsed_ns": elapsed})
	if err != nil {
		log.WithError(err).Debug("parse failed")
		return nil, err
	}
	log.WithField("statements", len(prog.Statements)).Debug("parsed")
	return prog, nil
}

// Run parses src completely and then evaluates it with a fresh interpreter.
// The result is returned even when evaluation fails so callers can report
// diagnostics gathered before the failure.
func Run(src *Source, opts RunOptions) (*Result, error) {
	opts = opts.normalize()
	prog, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	return Execute(src, prog, opts)
}

// Execute evaluates an already parsed program from src with a fresh
// interpreter.
func Execute(src *Source, prog *ast.Program, opts RunOptions) (*Result, error) {
	opts = opts.normalize()
	interp := interpreter.New(interpreter.Options{
		Stdout:      opts.Stdout,
		Stdin:       opts.Stdin,
		Diagnostics: opts.Diagnostics,
		Logger:      opts.Logger,
		Metrics:     opts.Metrics,
	})
	err := interp.Run(prog)
	res := &Result{Program: prog, Diagnostics: interp.Diagnostics()}
	log := opts.Logger.WithFields(logrus.Fields{
		"source":      src.Name,
		"diagnostics": len(res.Diagnostics),
		"elapsed_ns":  opts.Metrics.Timer(metrics.ProgramEval).Int64(),
	})
	if err != nil {
		log.WithError(err).Debug("evaluation failed")
		return res, err
	}
	log.Debug("evaluated")
	return res, nil
}
