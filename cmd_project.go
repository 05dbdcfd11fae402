package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
)

var argparserProject = &cobra.Command{
	Use:   "project {[flags]|SUBCOMMAND...}",
	Short: "Read the project's setuptools metadata",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserProject)
}
