package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
)

var argparserDist = &cobra.Command{
	Use:   "dist {[flags]|SUBCOMMAND...}",
	Short: "Build and examine the project's wheel distributions",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserDist)
}
