package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix          = "calc"
	defaultConfigFile  = ".calc.yml"
	errorMessagePrefix = "error mapping environment variables to command flags"
)

// checkEnvironmentVariables sets every flag not given on the command line
// from CALC_<FLAG> for root flags or CALC_<COMMAND>_<FLAG> otherwise.
func checkEnvironmentVariables(command *cobra.Command) error {
	global := viper.New()
	global.AutomaticEnv()
	global.SetEnvPrefix(envPrefix)

	local := viper.New()
	local.AutomaticEnv()
	local.SetEnvPrefix(fmt.Sprintf("%s_%s", envPrefix, command.Name()))

	persistent := command.Root().PersistentFlags()
	var errs []string
	command.Flags().VisitAll(func(f *pflag.Flag) {
		v := local
		if persistent.Lookup(f.Name) != nil {
			v = global
		}
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(configName))); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}

// applyConfigFile sets flags still unset from a YAML file. Root flags are
// top-level keys; command flags live under the command's name:
//
//	log_level: debug
//	run:
//	  metrics: true
func applyConfigFile(command *cobra.Command, path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	persistent := command.Root().PersistentFlags()
	var errs []string
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if persistent.Lookup(f.Name) == nil {
			key = command.Name() + "." + key
		}
		if !v.IsSet(key) {
			return
		}
		if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); err != nil {
			errs = append(errs, err.Error())
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %s: %s", path, strings.Join(errs, "; "))
}
