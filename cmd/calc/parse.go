package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/driver"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func newParseCommand(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Parse a program and print its syntax tree",
		Long: `Parse a program and print its syntax tree.

The pretty format draws the tree sideways: the right operand of a binary node
appears above it and the left operand below.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if format != formatPretty && format != formatJSON {
				return fmt.Errorf("invalid --format %q: want %s or %s", format, formatPretty, formatJSON)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return c.parseProgram(args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatPretty, "output format: pretty or json")
	return cmd
}

func (c *cli) parseProgram(path, format string) error {
	src, err := driver.Load(path, c.stdin)
	if err != nil {
		return err
	}
	prog, err := driver.Parse(src, driver.RunOptions{Logger: c.logger})
	if err != nil {
		return err
	}
	if format == formatJSON {
		bs, err := json.MarshalIndent(ast.Dump(prog), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.stdout, string(bs))
		return err
	}
	return ast.Fprint(c.stdout, prog)
}
