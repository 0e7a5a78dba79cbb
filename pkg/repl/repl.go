// Package repl implements the interactive shell.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/interpreter"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/lexer"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/parser"
)

// REPL represents an instance of the interactive shell. Bindings persist
// across entries until :reset.
type REPL struct {
	output io.Writer
	interp *interpreter.Interpreter

	buffer []string
	depth  int
	last   *ast.Program

	historyPath  string
	initPrompt   string
	bufferPrompt string
	banner       string
}

// New returns a REPL writing program output, diagnostics and command output
// to output. Zero fields of opts take their interpreter defaults, except the
// output streams which default to output.
func New(output io.Writer, historyPath string, banner string, opts interpreter.Options) *REPL {
	if opts.Stdout == nil {
		opts.Stdout = output
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = output
	}
	return &REPL{
		output:       output,
		interp:       interpreter.New(opts),
		historyPath:  historyPath,
		initPrompt:   "calc> ",
		bufferPrompt: "...> ",
		banner:       banner,
	}
}

// Interpreter exposes the session's interpreter.
func (r *REPL) Interpreter() *interpreter.Interpreter {
	return r.interp
}

// Loop runs until the user enters ":exit", Ctrl+C, Ctrl+D, or an unexpected
// prompt error occurs.
func (r *REPL) Loop() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	r.loadHistory(line)

	if len(r.banner) > 0 {
		fmt.Fprintln(r.output, r.banner)
	}

	line.SetCompleter(r.complete)

	for {
		input, err := line.Prompt(r.getPrompt())
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(r.output, "Exiting")
			break
		}
		if err != nil {
			r.saveHistory(line)
			return err
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if err := r.OneShot(input); err != nil {
			if _, ok := err.(stop); ok {
				break
			}
			fmt.Fprintln(r.output, "error:", err)
		}
	}

	r.saveHistory(line)
	return nil
}

// OneShot feeds one line to the shell. Lines are buffered while an if,
// while, class or def block is open and the whole entry is evaluated once it
// closes. Errors are returned for the caller to display; the buffer is
// discarded on error.
func (r *REPL) OneShot(line string) error {
	if len(r.buffer) == 0 {
		if cmd := newCommand(line); cmd != nil {
			switch cmd.op {
			case "vars":
				return r.cmdVars()
			case "tree":
				return r.cmdTree()
			case "reset":
				return r.cmdReset()
			case "help":
				return r.cmdHelp()
			case "exit":
				return r.cmdExit()
			default:
				return fmt.Errorf("unknown command :%s (try :help)", cmd.op)
			}
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}
	}

	r.buffer = append(r.buffer, line)
	r.depth += blockDelta(line)
	if r.depth > 0 {
		return nil
	}
	return r.evalBuffer()
}

// Pending reports whether an unfinished block is buffered.
func (r *REPL) Pending() bool {
	return len(r.buffer) > 0
}

func (r *REPL) evalBuffer() error {
	src := strings.Join(r.buffer, "\n") + "\n"
	r.buffer = nil
	r.depth = 0

	prog, err := parser.ParseString(src)
	if err != nil {
		return err
	}
	r.last = prog
	return r.interp.Run(prog)
}

// blockDelta counts block openers minus block closers on a line. Lines that
// do not lex are treated as balanced so the parser reports the problem.
func blockDelta(line string) int {
	toks, err := lexer.TokenizeString(line)
	if err != nil {
		return 0
	}
	delta := 0
	for _, tok := range toks {
		switch tok.Kind {
		case lexer.IF, lexer.WHILE, lexer.CLASS, lexer.DEF:
			delta++
		case lexer.ENDIF, lexer.ENDWHILE, lexer.ENDCLASS, lexer.ENDDEF:
			delta--
		}
	}
	return delta
}

func (r *REPL) complete(line string) (c []string) {
	start := strings.LastIndexFunc(line, func(ch rune) bool {
		return !(ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9')
	}) + 1
	head, word := line[:start], line[start:]
	if word == "" {
		return nil
	}
	candidates := append(lexer.Keywords(), r.interp.Global().Keys()...)
	for _, cand := range candidates {
		if strings.HasPrefix(cand, word) && cand != word {
			c = append(c, head+cand)
		}
	}
	return c
}

func (r *REPL) cmdVars() error {
	global := r.interp.Global()
	names := global.Keys()
	if len(names) == 0 {
		fmt.Fprintln(r.output, "no variables")
		return nil
	}
	values := global.Snapshot()
	table := tablewriter.NewWriter(r.output)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"name", "kind", "value"})
	for _, name := range names {
		v := values[name]
		table.Append([]string{name, v.Kind().String(), interpreter.Format(v)})
	}
	table.Render()
	return nil
}

func (r *REPL) cmdTree() error {
	if r.last == nil {
		fmt.Fprintln(r.output, "nothing evaluated yet")
		return nil
	}
	return ast.Fprint(r.output, r.last)
}

func (r *REPL) cmdReset() error {
	r.interp.Reset()
	r.last = nil
	return nil
}

func (r *REPL) cmdExit() error {
	return stop{}
}

func (r *REPL) cmdHelp() error {
	fmt.Fprintln(r.output, "")
	printHelpExamples(r.output, r.initPrompt)
	printHelpCommands(r.output)
	return nil
}

func (r *REPL) getPrompt() string {
	if len(r.buffer) > 0 {
		return r.bufferPrompt
	}
	return r.initPrompt
}

func (r *REPL) loadHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		_, _ = prompt.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) saveHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Create(r.historyPath); err == nil {
		_, _ = prompt.WriteHistory(f)
		f.Close()
	}
}

type stop struct{}

func (stop) Error() string {
	return "<stop>"
}

type commandDesc struct {
	name string
	help string
}

type exampleDesc struct {
	example string
	comment string
}

var examples = [...]exampleDesc{
	{"int x", "declare an integer"},
	{"x = 2 ^ 3 ^ 2", "assign (^ is right associative)"},
	{"println x", "print a value"},
	{"while (x > 0) ->", "open a block; finish it with endwhile"},
}

var builtin = [...]commandDesc{
	{"vars", "show global variables"},
	{"tree", "print the syntax tree of the last entry"},
	{"reset", "discard all variables and classes"},
	{"help", "print this message"},
	{"exit", "exit back to shell (or ctrl+c, ctrl+d)"},
}

type command struct {
	op   string
	args []string
}

func newCommand(line string) *command {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	p := strings.Fields(strings.ToLower(line[1:]))
	if len(p) == 0 {
		return nil
	}
	return &command{op: p[0], args: p[1:]}
}

func printHelpExamples(output io.Writer, promptSymbol string) {
	fmt.Fprintln(output, "Examples")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	maxLength := 0
	for _, ex := range examples {
		if len(ex.example) > maxLength {
			maxLength = len(ex.example)
		}
	}

	f := fmt.Sprintf("%v%%-%dv # %%v\n", promptSymbol, maxLength+1)
	for _, ex := range examples {
		fmt.Fprintf(output, f, ex.example, ex.comment)
	}
	fmt.Fprintln(output, "")
}

func printHelpCommands(output io.Writer) {
	fmt.Fprintln(output, "Commands")
	fmt.Fprintln(output, "========")
	fmt.Fprintln(output, "")

	maxLength := 0
	for _, c := range builtin {
		if len(c.name)+1 > maxLength {
			maxLength = len(c.name) + 1
		}
	}

	f := fmt.Sprintf("%%%dv : %%v\n", maxLength)
	for _, c := range builtin {
		fmt.Fprintf(output, f, ":"+c.name, c.help)
	}
	fmt.Fprintln(output, "")
}
