package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/logging"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/runtime"
)

const (
	defaultMaxCallDepth = 1000
	maxArrayLen         = 1 << 26
)

// Options wire the interpreter to its console and instrumentation. Zero
// fields fall back to the process streams, a silent logger and no-op metrics.
type Options struct {
	Stdout      io.Writer
	Stdin       io.Reader
	Diagnostics io.Writer
	Logger      logrus.FieldLogger
	Metrics     metrics.Metrics
	// MaxCallDepth bounds nested method calls.
	MaxCallDepth int
}

func (o Options) normalize() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Diagnostics == nil {
		o.Diagnostics = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.NoOp()
	}
	if o.MaxCallDepth <= 0 {
		o.MaxCallDepth = defaultMaxCallDepth
	}
	return o
}

// Interpreter evaluates programs against one global environment. State
// persists across Run calls. An Interpreter is not safe for concurrent use.
type Interpreter struct {
	global      *runtime.Environment
	opts        Options
	log         logrus.FieldLogger
	metrics     metrics.Metrics
	input       *bufio.Scanner
	diagnostics []Diagnostic
	depth       int
}

// New returns an interpreter with an empty global environment.
func New(opts Options) *Interpreter {
	opts = opts.normalize()
	input := bufio.NewScanner(opts.Stdin)
	input.Split(bufio.ScanWords)
	return &Interpreter{
		global:  runtime.NewEnvironment(nil),
		opts:    opts,
		log:     opts.Logger,
		metrics: opts.Metrics,
		input:   input,
	}
}

// Global returns the interpreter's global environment.
func (i *Interpreter) Global() *runtime.Environment {
	return i.global
}

// Diagnostics returns the soft diagnostics reported so far.
func (i *Interpreter) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), i.diagnostics...)
}

// Reset discards all bindings and diagnostics.
func (i *Interpreter) Reset() {
	i.global = runtime.NewEnvironment(nil)
	i.diagnostics = nil
	i.depth = 0
}

// Run executes a program in the global environment. Execution stops at the
// first runtime error; effects of earlier statements remain.
func (i *Interpreter) Run(prog *ast.Program) error {
	t := i.metrics.Timer(metrics.ProgramEval)
	t.Start()
	defer t.Stop()
	_, err := i.evaluate(prog, i.global)
	return err
}

// Evaluate computes a single expression in the global environment.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.evaluate(expr, i.global)
}

func (i *Interpreter) report(d Diagnostic) {
	i.diagnostics = append(i.diagnostics, d)
	i.metrics.Counter(metrics.Diagnostics).Incr()
	fmt.Fprintln(i.opts.Diagnostics, d.String())
	i.log.WithFields(logrus.Fields{
		"code": d.Code,
		"line": d.Line,
		"col":  d.Col,
	}).Warn(d.Message)
}
