package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/driver"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
)

func newTestCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "test <suite.yml>...",
		Short: "Run scenario suites",
		Long: `Run every scenario in the given YAML suites and print a summary.

Each scenario names a program (source or file), optional stdin, and the
expected stdout, error substring or diagnostics count. The command fails if
any scenario fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.runSuites(args)
		},
	}
}

func (c *cli) runSuites(paths []string) error {
	suites := make([]*driver.Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := driver.LoadSuite(path)
		if err != nil {
			return err
		}
		suites = append(suites, suite)
	}

	table := tablewriter.NewWriter(c.stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"suite", "scenario", "result", "time"})

	var passed, failed int
	var report strings.Builder
	for _, suite := range suites {
		for _, res := range suite.Run(c.logger, metrics.NoOp()) {
			result := "PASS"
			if res.Passed {
				passed++
			} else {
				failed++
				result = "FAIL"
				fmt.Fprintf(&report, "--- FAIL: %s/%s\n", suite.Name, res.Name)
				for _, f := range res.Failures {
					fmt.Fprintf(&report, "    %s\n", strings.ReplaceAll(f, "\n", "\n    "))
				}
			}
			table.Append([]string{suite.Name, res.Name, result, res.Duration.String()})
		}
	}
	table.Render()
	fmt.Fprint(c.stdout, report.String())
	fmt.Fprintf(c.stdout, "%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}
