package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/datawire/wheelwright/pkg/python/pyinspect"
)

func init() {
	cmd := &cobra.Command{
		Use:   "inspect [flags] [INTERPRETER_CMDLINE...] >PYTHON.yml",
		Short: "Dump information about a Python environment",
		Long: "Run the given interpreter command line (default: `python3`) once, and dump " +
			"what it reports about itself: executable path, installation prefixes, " +
			"version, platform, and (when the interpreter has the `packaging` module " +
			"available) its supported compatibility tags.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdline := args
			if len(cmdline) == 0 {
				cmdline = []string{"python3"}
			}
			info, err := pyinspect.Inspect(cmd.Context(), cmdline...)
			if err != nil {
				return err
			}

			bs, err := yaml.Marshal(info)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(bs); err != nil {
				return err
			}
			return nil
		},
	}
	argparserPython.AddCommand(cmd)
}
