package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/python/pep440"
	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

func init() {
	var flagNormalize bool
	cmd := &cobra.Command{
		Use:   "version [flags] [PROJECT_DIR]",
		Short: "Print the project's version",
		Args:  cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir := "."
			if len(args) == 1 {
				projectDir = args[0]
			}
			metadata, err := setuptools.Discover(projectDir)
			if err != nil {
				return err
			}

			versionStr := metadata.Version
			if flagNormalize {
				version, err := pep440.ParseVersion(versionStr)
				if err != nil {
					return err
				}
				normVersion, err := version.Normalize()
				if err != nil {
					return err
				}
				versionStr = normVersion.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), versionStr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagNormalize, "normalize", false,
		"Print the PEP 440 normal form instead of the declared string")
	argparserProject.AddCommand(cmd)
}
