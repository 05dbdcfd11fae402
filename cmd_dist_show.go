package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/python"
	"github.com/datawire/wheelwright/pkg/python/pypa/bdist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [flags] WHEELFILE",
		Short: "Show a wheel's metadata and contents",
		Long: "Print the wheel's METADATA headers, followed by an `ls -l`-style listing of " +
			"the archive members (with the member's recorded UNIX permission bits " +
			"rendered the way Python's stat.filemode renders them).",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			maybeSetErr := func(_err error) {
				if _err != nil && err == nil {
					err = _err
				}
			}

			wh, err := bdist.OpenWheel(args[0])
			if err != nil {
				return err
			}
			defer func() {
				maybeSetErr(wh.Close())
			}()

			metadata, err := wh.DistInfoMetadata()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			keys := make([]string, 0, len(metadata))
			for key := range metadata {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				for _, val := range metadata[key] {
					fmt.Fprintf(out, "%s: %s\n", key, val)
				}
			}

			fmt.Fprintln(out)
			for _, file := range wh.Files() {
				mode := python.ParseZIPExternalAttributes(file.ExternalAttrs).UNIX
				fmt.Fprintf(out, "%s %9d %s\n",
					mode, file.UncompressedSize64, file.Name)
			}
			return nil
		},
	}
	argparserDist.AddCommand(cmd)
}
