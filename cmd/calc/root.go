package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/logging"
)

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	logLevel   string
	logFormat  string

	logger *logrus.Logger
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "calc",
		Short:         "Interpreter for the calc scripting language",
		Long:          "Parse and evaluate calc programs: arithmetic over integers and reals, arrays, if/while, and classes with single inheritance.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.configure(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "path to a YAML config file (default .calc.yml when present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "error", "log level: trace, debug, info, warn or error")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "log format: text, json or json-pretty")

	root.AddCommand(
		newRunCommand(c),
		newParseCommand(c),
		newReplCommand(c),
		newTestCommand(c),
		newVersionCommand(c),
	)
	return root
}

// configure fills unset flags from the environment and then the config file,
// and builds the logger.
func (c *cli) configure(cmd *cobra.Command) error {
	if err := checkEnvironmentVariables(cmd); err != nil {
		return err
	}
	if err := applyConfigFile(cmd, c.configFile); err != nil {
		return err
	}
	logger, err := logging.New(c.logLevel, c.logFormat, c.stderr)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}
