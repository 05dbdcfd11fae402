package main

import (
	"fmt"

	"github.com/datawire/dlib/derror"
	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
)

func init() {
	var flags struct {
		DistDir string
	}
	cmd := &cobra.Command{
		Use:   "check [flags] [WHEELFILE...]",
		Short: "Verify the integrity of built wheels",
		Long: "Verify each wheel file against its own RECORD: every archived file must be " +
			"listed with a matching size and a matching strong (sha256 or better) hash, " +
			"and no unlisted files may be present.  With no arguments, every *.whl in " +
			"the dist/ directory is checked.  Success is silent.",
		Args: cliutil.WrapPositionalArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			filenames := args
			if len(filenames) == 0 {
				wheels, err := distWheels(flags.DistDir)
				if err != nil {
					return err
				}
				if len(wheels) == 0 {
					return fmt.Errorf("no wheels found in %q", flags.DistDir)
				}
				for _, wheel := range wheels {
					filenames = append(filenames, wheel.Path)
				}
			}

			var errs derror.MultiError
			for _, filename := range filenames {
				if err := checkWheel(cmd.Context(), filename); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", filename, err))
				}
			}
			switch len(errs) {
			case 0:
				return nil
			case 1:
				return errs[0]
			default:
				return errs
			}
		},
	}
	cmd.Flags().StringVar(&flags.DistDir, "dist-dir", "dist",
		"Look for wheels in `DIR` when no WHEELFILEs are given")
	argparserDist.AddCommand(cmd)
}
