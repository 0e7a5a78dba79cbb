package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

const version = "calc 0.1.0"

func newVersionCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of calc",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(c.stdout, version)
			fmt.Fprintf(c.stdout, "Go Version: %s\n", runtime.Version())
		},
	}
}
