package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
)

var argparserPython = &cobra.Command{
	Use:   "python {[flags]|SUBCOMMAND...}",
	Short: "Deal with the Python interpreter environment",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserPython)
}
