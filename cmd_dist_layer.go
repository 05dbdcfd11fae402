package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/dir"
	"github.com/datawire/wheelwright/pkg/fsutil"
	"github.com/datawire/wheelwright/pkg/reproducible"
)

func init() {
	var flags struct {
		DistDir string
		Prefix  string
		Verify  bool
		Output  string
	}
	cmd := &cobra.Command{
		Use:   "layer [flags] >OUT_LAYERFILE",
		Short: "Package the built wheels as an OCI layer",
		Long: "Package the dist/ directory in to an uncompressed OCI layer tarball, rooted " +
			"at --prefix and owned by root:root.  The layer is deterministic: entries " +
			"are in lexical order, and with SOURCE_DATE_EPOCH set, timestamps are " +
			"clamped to it.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			maybeSetErr := func(_err error) {
				if _err != nil && err == nil {
					err = _err
				}
			}

			if flags.Verify {
				wheels, err := distWheels(flags.DistDir)
				if err != nil {
					return err
				}
				for _, wheel := range wheels {
					if err := checkWheel(cmd.Context(), wheel.Path); err != nil {
						return fmt.Errorf("%s: %w", wheel.Path, err)
					}
				}
			}

			root := dir.Ownership{
				UName: "root",
				GName: "root",
			}
			layer, err := dir.LayerFromDir(flags.DistDir,
				&dir.Prefix{
					DirName:   flags.Prefix,
					Ownership: root,
				},
				&root,
				reproducible.Now())
			if err != nil {
				return err
			}

			out := os.Stdout
			if flags.Output != "" && flags.Output != "-" {
				file, err := os.Create(flags.Output)
				if err != nil {
					return err
				}
				defer func() {
					maybeSetErr(file.Close())
				}()
				out = file
			}
			return fsutil.WriteLayer(layer, out)
		},
	}
	cmd.Flags().StringVar(&flags.DistDir, "dist-dir", "dist",
		"Package the wheels in `DIR`")
	cmd.Flags().StringVar(&flags.Prefix, "prefix", "opt/wheelhouse",
		"Root the layer's content at `DIR`; forward-slash separated and absolute, but NOT starting with a slash")
	cmd.Flags().BoolVar(&flags.Verify, "verify", false,
		"Verify each wheel's RECORD before packaging; refuse to build the layer on failure")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "",
		"Write the layer to `FILE` instead of stdout")
	argparserDist.AddCommand(cmd)
}
