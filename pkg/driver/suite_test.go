package driver

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
)

func TestLanguageScenarios(t *testing.T) {
	suite, err := LoadSuite(filepath.Join("..", "..", "testdata", "scenarios.yml"))
	if err != nil {
		t.Fatalf("load suite: %v", err)
	}
	if suite.Name != "language" {
		t.Fatalf("unexpected suite name %q", suite.Name)
	}
	for _, res := range suite.Run(nil, metrics.New()) {
		if !res.Passed {
			t.Errorf("scenario %q failed:\n%s", res.Name, strings.Join(res.Failures, "\n"))
		}
	}
}

func TestSuiteReportsFailures(t *testing.T) {
	suite, err := DecodeSuite("inline.yml", strings.NewReader(`
scenarios:
  - name: wrong output
    source: "print 1"
    stdout: "2\n"
  - name: missing error
    source: "print 1"
    error: "boom"
    stdout: "1\n"
  - name: wrong diagnostics
    source: "print 1"
    diagnostics: 2
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if suite.Name != "inline" {
		t.Fatalf("suite name should default to the file name, got %q", suite.Name)
	}
	results := suite.Run(nil, nil)
	if Passed(results) {
		t.Fatalf("expected failures")
	}
	for _, res := range results {
		if res.Passed || len(res.Failures) != 1 {
			t.Fatalf("scenario %q: expected exactly one failure, got %v", res.Name, res.Failures)
		}
	}
}

func TestSuiteValidation(t *testing.T) {
	_, err := DecodeSuite("bad.yml", strings.NewReader(`
scenarios:
  - name: a
    source: "print 1"
  - name: a
    source: "print 1"
    file: x.calc
    stdout: ""
  - source: "print 1"
    diagnostics: -1
`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		`a: expects nothing (set stdout, error or diagnostics)`,
		`scenario "a" is defined more than once`,
		`a: source and file are mutually exclusive`,
		`scenarios[2] must have a name`,
		`scenarios[2]: diagnostics must not be negative`,
	}
	if len(verr.Issues) != len(want) {
		t.Fatalf("unexpected issues:\n%s", verr.Error())
	}
	for i := range want {
		if verr.Issues[i] != want[i] {
			t.Fatalf("issue %d = %q, want %q", i, verr.Issues[i], want[i])
		}
	}
}

func TestSuiteRejectsUnknownFields(t *testing.T) {
	_, err := DecodeSuite("typo.yml", strings.NewReader("scenarios:\n  - name: a\n    sauce: x\n"))
	if err == nil || !strings.Contains(err.Error(), "sauce") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, err := DecodeSuite("empty.yml", strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty suite")
	}
}
