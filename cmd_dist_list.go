package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
)

func init() {
	var flags struct {
		Long    bool
		DistDir string
	}
	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List the built wheels, lowest version first",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			wheels, err := distWheels(flags.DistDir)
			if err != nil {
				return err
			}

			if !flags.Long {
				for _, wheel := range wheels {
					fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(wheel.Path))
				}
				return nil
			}

			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(table, "FILENAME\tVERSION\tBUILD\tTAGS")
			for _, wheel := range wheels {
				build := ""
				if wheel.Data.BuildTag != nil {
					build = wheel.Data.BuildTag.String()
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
					filepath.Base(wheel.Path),
					wheel.Data.Version.String(),
					build,
					wheel.Data.CompatibilityTag.String())
			}
			return table.Flush()
		},
	}
	cmd.Flags().BoolVarP(&flags.Long, "long", "l", false,
		"Show version, build tag, and compatibility tags")
	cmd.Flags().StringVar(&flags.DistDir, "dist-dir", "dist",
		"Look for wheels in `DIR`")
	argparserDist.AddCommand(cmd)
}
