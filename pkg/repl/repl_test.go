package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/interpreter"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/parser"
)

func newTestREPL(stdin string) (*REPL, *bytes.Buffer) {
	var buf bytes.Buffer
	r := New(&buf, "", "", interpreter.Options{Stdin: strings.NewReader(stdin)})
	return r, &buf
}

func mustOneShot(t *testing.T, r *REPL, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := r.OneShot(line); err != nil {
			t.Fatalf("OneShot(%q): %v", line, err)
		}
	}
}

func TestOneShotPersistsBindings(t *testing.T) {
	r, buf := newTestREPL("")
	mustOneShot(t, r, "int x", "x = 2 ^ 3 ^ 2", "println x")
	if buf.String() != "512\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestOneShotBuffersBlocks(t *testing.T) {
	r, buf := newTestREPL("")
	mustOneShot(t, r, "int i", "i = 3")
	for _, line := range []string{"while (i > 0) ->", "  if (i is 2) ->", "    println \"two\""} {
		mustOneShot(t, r, line)
		if !r.Pending() || r.getPrompt() != "...> " {
			t.Fatalf("expected a pending block after %q", line)
		}
	}
	mustOneShot(t, r, "  endif", "  i = i - 1")
	if buf.Len() != 0 {
		t.Fatalf("nothing should run before the block closes, got %q", buf.String())
	}
	mustOneShot(t, r, "endwhile")
	if r.Pending() || r.getPrompt() != "calc> " {
		t.Fatalf("block should be closed")
	}
	if buf.String() != "two\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestOneShotClasses(t *testing.T) {
	r, buf := newTestREPL("")
	mustOneShot(t, r,
		"class Counter ->",
		"  public int n",
		"  def bump(int by) ->",
		"    n = n + by",
		"  enddef",
		"endclass",
		"Counter c",
		"c.bump(4)",
		"c.bump(1)",
		"println c.n",
	)
	if buf.String() != "5\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestOneShotErrors(t *testing.T) {
	r, _ := newTestREPL("")
	if err := r.OneShot("print ("); !errors.Is(err, parser.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if r.Pending() {
		t.Fatalf("buffer should be discarded after an error")
	}
	var rerr *interpreter.RuntimeError
	if err := r.OneShot("y = 1"); !errors.As(err, &rerr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if err := r.OneShot(":bogus"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := r.OneShot(":exit"); err == nil {
		t.Fatalf("expected stop")
	} else if _, ok := err.(stop); !ok {
		t.Fatalf("expected stop, got %v", err)
	}
}

func TestCommandVarsAndReset(t *testing.T) {
	r, buf := newTestREPL("")
	mustOneShot(t, r, ":vars")
	if buf.String() != "no variables\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	buf.Reset()

	mustOneShot(t, r, "real ratio", "ratio = 1.5", "int[2] a", ":vars")
	out := buf.String()
	for _, want := range []string{"name", "kind", "value", "ratio", "real", "1.5", "a", "[0, 0]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("vars output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "ratio") < strings.Index(out, "| a") {
		t.Fatalf("variables should be sorted:\n%s", out)
	}

	mustOneShot(t, r, ":reset")
	if len(r.Interpreter().Global().Keys()) != 0 {
		t.Fatalf("reset should clear globals")
	}
	buf.Reset()
	mustOneShot(t, r, ":tree")
	if buf.String() != "nothing evaluated yet\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestCommandTree(t *testing.T) {
	r, buf := newTestREPL("")
	mustOneShot(t, r, "int x", "x = 1 + 2")
	buf.Reset()
	mustOneShot(t, r, ":tree")
	expected := strings.Join([]string{
		"--+ Program",
		"  |  |  |--+ Number 2",
		"  |  |--+ BinaryOp +",
		"  |  |  |--+ Number 1",
		"  |--+ Assign",
		"  |  |--+ Variable x",
		"",
	}, "\n")
	if d := cmp.Diff(expected, buf.String()); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestScanfReadsConfiguredInput(t *testing.T) {
	r, buf := newTestREPL("41")
	mustOneShot(t, r, "int n", "scanf(n)", "println n + 1")
	if buf.String() != "42\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestComplete(t *testing.T) {
	r, _ := newTestREPL("")
	mustOneShot(t, r, "int total", "int tally")
	got := r.complete("println ta")
	if d := cmp.Diff([]string{"println tally"}, got); d != "" {
		t.Fatalf("unexpected completions (-want +got):\n%s", d)
	}
	got = r.complete("wh")
	if d := cmp.Diff([]string{"while"}, got); d != "" {
		t.Fatalf("unexpected completions (-want +got):\n%s", d)
	}
	if got := r.complete("x = "); got != nil {
		t.Fatalf("expected no completions, got %v", got)
	}
}

func TestHelp(t *testing.T) {
	r, buf := newTestREPL("")
	mustOneShot(t, r, ":help")
	for _, want := range []string{"Examples", "Commands", ":vars", ":exit", "calc> int x"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("help missing %q:\n%s", want, buf.String())
		}
	}
}
