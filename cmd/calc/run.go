package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/driver"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
)

type runParams struct {
	git             string
	ref             string
	tag             string
	branch          string
	metrics         bool
	stdinFile       string
	disableComments bool
}

func newRunCommand(c *cli) *cobra.Command {
	var params runParams
	cmd := &cobra.Command{
		Use:   "run [FILE|-]",
		Short: "Parse and evaluate a program",
		Long: `Parse a program completely and then evaluate it.

The program is read from FILE, or from standard input when FILE is "-" or
omitted. With --git, FILE is a path inside the repository, which is cloned
into $CALC_HOME (default ~/.calc) at the requested revision.

scanf reads from standard input, or from the file given by --stdin. A program
read from standard input consumes it, so such a program may only use scanf
together with --stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			return c.runProgram(path, params)
		},
	}
	cmd.Flags().StringVar(&params.git, "git", "", "load FILE from this git repository")
	cmd.Flags().StringVar(&params.ref, "ref", "", "git revision (commit, or anything git can resolve)")
	cmd.Flags().StringVar(&params.tag, "tag", "", "git tag")
	cmd.Flags().StringVar(&params.branch, "branch", "", "git branch")
	cmd.Flags().BoolVar(&params.metrics, "metrics", false, "print timers and counters to stderr after the run")
	cmd.Flags().StringVar(&params.stdinFile, "stdin", "", "read scanf input from this file instead of standard input")
	cmd.Flags().BoolVar(&params.disableComments, "disable-comments", false, "treat '#' as an invalid character")
	return cmd
}

func (c *cli) runProgram(path string, params runParams) error {
	m := metrics.NoOp()
	if params.metrics {
		m = metrics.New()
	}

	src, err := c.loadSource(path, params, m)
	if err != nil {
		return err
	}

	opts := driver.RunOptions{
		Stdout:          c.stdout,
		Diagnostics:     c.stderr,
		Logger:          c.logger,
		Metrics:         m,
		DisableComments: params.disableComments,
	}
	prog, err := driver.Parse(src, opts)
	if err != nil {
		if params.metrics {
			printMetrics(c.stderr, m)
		}
		return err
	}

	programOnStdin := path == "-" && params.git == ""
	if programOnStdin && params.stdinFile == "" && ast.Contains(prog, ast.NodeScan) {
		return errors.New("program read from standard input uses scanf; pass its input with --stdin FILE")
	}

	opts.Stdin = c.stdin
	if params.stdinFile != "" {
		f, err := os.Open(params.stdinFile)
		if err != nil {
			return fmt.Errorf("open stdin file: %w", err)
		}
		defer f.Close()
		opts.Stdin = f
	}

	_, err = driver.Execute(src, prog, opts)
	if params.metrics {
		printMetrics(c.stderr, m)
	}
	return err
}

func (c *cli) loadSource(path string, params runParams, m metrics.Metrics) (*driver.Source, error) {
	t := m.Timer(metrics.SourceLoad)
	t.Start()
	defer t.Stop()

	if params.git == "" {
		if params.ref != "" || params.tag != "" || params.branch != "" {
			return nil, errors.New("--ref, --tag and --branch require --git")
		}
		return driver.Load(path, c.stdin)
	}

	set := 0
	for _, s := range []string{params.ref, params.tag, params.branch} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("at most one of --ref, --tag and --branch may be given")
	}
	if path == "-" {
		return nil, errors.New("--git requires the path of a program inside the repository")
	}
	cacheDir, err := driver.CacheDir()
	if err != nil {
		return nil, err
	}
	spec := driver.GitSpec{URL: params.git, Rev: params.ref, Tag: params.tag, Branch: params.branch}
	src, err := driver.NewGitFetcher(cacheDir).Load(spec, path)
	if err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{"url": spec.URL, "source": src.Name}).Debug("fetched program")
	return src, nil
}

func printMetrics(w io.Writer, m metrics.Metrics) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"metric", "value"})
	for _, e := range metrics.Sorted(m) {
		table.Append([]string{e.Key, fmt.Sprint(e.Value)})
	}
	table.Render()
}
