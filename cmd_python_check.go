package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/python/pep440"
	"github.com/datawire/wheelwright/pkg/python/pyinspect"
	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

func init() {
	var flagPython string
	cmd := &cobra.Command{
		Use:   "check [flags] [PROJECT_DIR]",
		Short: "Check that the interpreter satisfies the project's python_requires",
		Long: "Preflight for a build: read the project's python_requires specifier, ask the " +
			"interpreter for its version, and fail if the interpreter doesn't satisfy " +
			"the specifier.  A project with no python_requires always passes.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectDir := "."
			if len(args) == 1 {
				projectDir = args[0]
			}
			metadata, err := setuptools.Discover(projectDir)
			if err != nil {
				return err
			}
			if metadata.RequiresPython == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s declares no python_requires\n",
					metadata.Name)
				return nil
			}
			spec, err := pep440.ParseSpecifier(metadata.RequiresPython)
			if err != nil {
				return fmt.Errorf("python_requires: %w", err)
			}

			info, err := pyinspect.Inspect(ctx, strings.Fields(flagPython)...)
			if err != nil {
				return err
			}
			pyVersion, err := info.VersionInfo.PEP440()
			if err != nil {
				return err
			}

			if !spec.Match(*pyVersion) {
				return fmt.Errorf("Python %s (%s) does not satisfy %s's python_requires %q",
					info.VersionInfo, info.Executable, metadata.Name, metadata.RequiresPython)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Python %s satisfies %s's python_requires %q\n",
				info.VersionInfo, metadata.Name, metadata.RequiresPython)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagPython, "python", "python3",
		"Check the interpreter run by `CMDLINE` (split on whitespace)")
	argparserPython.AddCommand(cmd)
}
