package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/driver"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/interpreter"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/repl"
)

func newReplCommand(c *cli) *cobra.Command {
	var historyPath string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Variables and classes persist between
entries; blocks are buffered until their closing keyword. Type :help for the
shell commands.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := resolveHistoryPath(historyPath)
			if err != nil {
				return err
			}
			r := repl.New(c.stdout, path, fmt.Sprintf("%s (:help for commands)", version), interpreter.Options{
				Stdin:       c.stdin,
				Diagnostics: c.stderr,
				Logger:      c.logger,
			})
			return r.Loop()
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "history file (default $CALC_HOME/history)")
	return cmd
}

func resolveHistoryPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := driver.CacheDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}
