package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
)

// Suite is a YAML file of program scenarios with expected console behaviour.
type Suite struct {
	Path      string
	Name      string
	Scenarios []*Scenario
}

// Scenario is one program run. Exactly one of Source and File is set; File is
// relative to the suite file.
type Scenario struct {
	Name        string  `yaml:"name"`
	Source      string  `yaml:"source"`
	File        string  `yaml:"file"`
	Stdin       string  `yaml:"stdin"`
	Stdout      *string `yaml:"stdout"`
	Error       string  `yaml:"error"`
	Diagnostics *int    `yaml:"diagnostics"`
}

type suiteFile struct {
	Name      string      `yaml:"name"`
	Scenarios []*Scenario `yaml:"scenarios"`
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadSuite parses and validates a suite file.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()
	return DecodeSuite(absPath, file)
}

// DecodeSuite parses a suite from r. Unknown keys are rejected.
func DecodeSuite(path string, r io.Reader) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", path)
		}
		return nil, fmt.Errorf("suite: parse %s: %w", path, err)
	}
	suite := &Suite{Path: path, Name: raw.Name, Scenarios: raw.Scenarios}
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

func (s *Suite) validate() error {
	var errs ValidationError
	if len(s.Scenarios) == 0 {
		errs.Issues = append(errs.Issues, "at least one scenario must be provided")
	}
	seen := make(map[string]bool, len(s.Scenarios))
	for i, sc := range s.Scenarios {
		if sc == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("scenarios[%d] must not be empty", i))
			continue
		}
		label := sc.Name
		if label == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("scenarios[%d] must have a name", i))
			label = fmt.Sprintf("scenarios[%d]", i)
		} else if seen[sc.Name] {
			errs.Issues = append(errs.Issues, fmt.Sprintf("scenario %q is defined more than once", sc.Name))
		}
		seen[sc.Name] = true
		switch {
		case sc.Source == "" && sc.File == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: source or file must be provided", label))
		case sc.Source != "" && sc.File != "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: source and file are mutually exclusive", label))
		}
		if sc.Stdout == nil && sc.Error == "" && sc.Diagnostics == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: expects nothing (set stdout, error or diagnostics)", label))
		}
		if sc.Diagnostics != nil && *sc.Diagnostics < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: diagnostics must not be negative", label))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ScenarioResult records the outcome of one scenario.
type ScenarioResult struct {
	Name     string
	Passed   bool
	Failures []string
	Duration time.Duration
}

// Passed reports whether every scenario passed.
func Passed(results []ScenarioResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Run executes every scenario in order with a fresh interpreter each.
func (s *Suite) Run(logger logrus.FieldLogger, m metrics.Metrics) []ScenarioResult {
	results := make([]ScenarioResult, 0, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		start := time.Now()
		res := ScenarioResult{Name: sc.Name, Failures: s.check(sc, logger, m)}
		res.Passed = len(res.Failures) == 0
		res.Duration = time.Since(start)
		if logger != nil {
			logger.WithFields(logrus.Fields{"suite": s.Name, "scenario": sc.Name, "passed": res.Passed}).Debug("scenario finished")
		}
		results = append(results, res)
	}
	return results
}

func (s *Suite) check(sc *Scenario, logger logrus.FieldLogger, m metrics.Metrics) []string {
	src := &Source{Name: s.Name + "/" + sc.Name, Text: sc.Source}
	if sc.File != "" {
		path := sc.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(s.Path), path)
		}
		loaded, err := LoadFile(path)
		if err != nil {
			return []string{err.Error()}
		}
		src = loaded
	}

	var stdout, diags bytes.Buffer
	res, err := Run(src, RunOptions{
		Stdout:      &stdout,
		Stdin:       strings.NewReader(sc.Stdin),
		Diagnostics: &diags,
		Logger:      logger,
		Metrics:     m,
	})

	var failures []string
	switch {
	case err != nil && sc.Error == "":
		failures = append(failures, fmt.Sprintf("unexpected error: %v", err))
	case err == nil && sc.Error != "":
		failures = append(failures, fmt.Sprintf("expected error containing %q, got none", sc.Error))
	case err != nil && !strings.Contains(err.Error(), sc.Error):
		failures = append(failures, fmt.Sprintf("expected error containing %q, got %q", sc.Error, err.Error()))
	}
	if sc.Stdout != nil && stdout.String() != *sc.Stdout {
		failures = append(failures, fmt.Sprintf("stdout mismatch:\n  want %q\n  got  %q", *sc.Stdout, stdout.String()))
	}
	if sc.Diagnostics != nil {
		got := 0
		if res != nil {
			got = len(res.Diagnostics)
		}
		if got != *sc.Diagnostics {
			failures = append(failures, fmt.Sprintf("expected %d diagnostics, got %d: %s", *sc.Diagnostics, got, strings.TrimSpace(diags.String())))
		}
	}
	return failures
}
