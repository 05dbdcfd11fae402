package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/pipbuild"
)

func init() {
	var flags struct {
		All     bool
		DistDir string
	}
	cmd := &cobra.Command{
		Use:   "clean [flags] [PROJECT_DIR]",
		Short: "Remove the build byproduct directories",
		Long: "Remove the transient build/ and *.egg-info directories that a wheel build " +
			"leaves behind.  With --all, remove the dist/ output directory too.  " +
			"Directories that don't exist are skipped silently.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipbuild.Options{
				DistDir: flags.DistDir,
			}
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			return pipbuild.Clean(cmd.Context(), opts, flags.All)
		},
	}
	cmd.Flags().BoolVar(&flags.All, "all", false,
		"Also remove the dist/ output directory")
	cmd.Flags().StringVar(&flags.DistDir, "dist-dir", "dist",
		"The output `DIR` that --all removes, relative to the project directory")
	argparserDist.AddCommand(cmd)
}
