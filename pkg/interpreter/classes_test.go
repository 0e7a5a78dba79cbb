package interpreter

import (
	"errors"
	"strings"
	"testing"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/runtime"
)

const counterClass = `
class Counter ->
  public int count
  private real[2] history
  def bump(int by) ->
    count = count + by
  enddef
  def show() ->
    print count
  enddef
endclass
`

func TestObjectsHavePersistentFields(t *testing.T) {
	s := newSession("")
	s.mustRun(t, counterClass+`
Counter a
Counter b
a.bump(2)
a.bump(3)
b.bump(10)
a.show()
b.show()
print a.count + b.count
`)
	if got := s.stdout.String(); got != "5\n10\n15\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFieldReadWrite(t *testing.T) {
	s := newSession("")
	s.mustRun(t, counterClass+`
Counter c
c.count = 4.9
print c.count
print c
`)
	if got := s.stdout.String(); got != "4\n<object c of Counter>\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestMethodsSeeGlobals(t *testing.T) {
	s := newSession("")
	s.mustRun(t, `
int total
class Acc ->
  public int n
  def add(real x) ->
    n = n + 1
    total = total + x
  enddef
endclass
Acc acc
acc.add(2.5)
acc.add(1)
print total
print acc.n
`)
	if got := s.stdout.String(); got != "3\n2\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestMethodParametersAreLocal(t *testing.T) {
	s := newSession("")
	s.mustRun(t, counterClass+"Counter c\nc.bump(1)\n")
	if s.interp.Global().Has("by") {
		t.Fatalf("parameters must not leak into the global scope")
	}
	obj, _ := s.interp.Global().Get("c")
	if obj.(*runtime.ObjectValue).Fields.Has("by") {
		t.Fatalf("parameters must not leak into the instance fields")
	}
}

func TestInheritance(t *testing.T) {
	s := newSession("")
	s.mustRun(t, `
class Shape ->
  public int sides
  def describe() ->
    print sides
  enddef
endclass
class Square derived Shape ->
  public real side
  def area() ->
    print side * side
  enddef
endclass
Square sq
sq.sides = 4
sq.side = 1.5
sq.describe()
sq.area()
`)
	if got := s.stdout.String(); got != "4\n2.25\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestInheritanceIsSingleLevel(t *testing.T) {
	s := newSession("")
	err := s.run(t, `
class A ->
  def hello() ->
    print 1
  enddef
endclass
class B derived A ->
endclass
class C derived B ->
endclass
C c
c.hello()
`)
	if !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("expected method lookup to stop at the parent, got %v", err)
	}
}

func TestMethodNotFound(t *testing.T) {
	s := newSession("")
	err := s.run(t, counterClass+"Counter c\nc.bmp(1)\n")
	if !errors.Is(err, ErrMethodNotFound) {
		t.Fatalf("expected ErrMethodNotFound, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Method: bmp not found in: c") || !strings.Contains(msg, `"bump"`) {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestClassErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown parent", "class B derived A ->\nendclass\n", runtime.ErrUndefined},
		{"parent not a class", "int A\nclass B derived A ->\nendclass\n", ErrNotAClass},
		{"instantiate non-class", "int A\nA a\n", ErrNotAClass},
		{"member of non-object", "int x\nx.y = 1\n", ErrNotAnObject},
		{"unknown field", counterClass + "Counter c\nprint c.cnt\n", runtime.ErrUndefined},
		{"arity", counterClass + "Counter c\nc.bump()\n", ErrArity},
		{"duplicate object", counterClass + "Counter c\nCounter c\n", runtime.ErrRedeclared},
		{"field shadowing parent", "class A ->\npublic int x\nendclass\nclass B derived A ->\npublic int x\nendclass\nB b\n", runtime.ErrRedeclared},
		{
			"runaway recursion",
			"class R ->\ndef loop() ->\nr.loop()\nenddef\nendclass\nR r\nr.loop()\n",
			ErrCallDepth,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession("")
			if err := s.run(t, tc.src); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMethodCallsAreCounted(t *testing.T) {
	s := newSession("")
	s.mustRun(t, counterClass+"Counter c\nc.bump(1)\nc.show()\n")
	if len(s.interp.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics %#v", s.interp.Diagnostics())
	}
}
