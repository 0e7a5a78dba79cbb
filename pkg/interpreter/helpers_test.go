package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/parser"
)

type session struct {
	interp *Interpreter
	stdout *bytes.Buffer
	diags  *bytes.Buffer
}

func newSession(stdin string) *session {
	s := &session{stdout: &bytes.Buffer{}, diags: &bytes.Buffer{}}
	s.interp = New(Options{
		Stdout:      s.stdout,
		Stdin:       strings.NewReader(stdin),
		Diagnostics: s.diags,
	})
	return s
}

// run parses and executes src, failing the test on parse errors only.
func (s *session) run(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s.interp.Run(prog)
}

func (s *session) mustRun(t *testing.T, src string) {
	t.Helper()
	if err := s.run(t, src); err != nil {
		t.Fatalf("run: %v", err)
	}
}
