package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/python/pep440"
	"github.com/datawire/wheelwright/pkg/python/pep503"
	"github.com/datawire/wheelwright/pkg/python/pep592"
	"github.com/datawire/wheelwright/pkg/python/pep629"
	"github.com/datawire/wheelwright/pkg/python/pypa/bdist"
	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

// versionFlag is a pflag.Value holding a PEP 440 version; parse errors surface
// as usage errors instead of waiting for the network round-trip.
type versionFlag struct {
	Version *pep440.Version
}

var _ pflag.Value = (*versionFlag)(nil)

func (f *versionFlag) Type() string { return "VERSION" }

func (f *versionFlag) String() string {
	if f.Version == nil {
		return ""
	}
	return f.Version.String()
}

func (f *versionFlag) Set(val string) error {
	version, err := pep440.ParseVersion(val)
	if err != nil {
		return err
	}
	f.Version = version
	return nil
}

func init() {
	var flags struct {
		IndexServer string
		Python      versionFlag
		Check       bool
		Dir         string
	}
	cmd := &cobra.Command{
		Use:   "releases [flags] [PACKAGE]",
		Short: "List a package's released files on the package index",
		Long: "Query a PEP 503 \"simple repository API\" index for the files released for " +
			"PACKAGE (default: the project in the current directory), marking files " +
			"that the index has yanked.  With --python, files whose requires-python " +
			"says they can't run on that Python version are excluded." +
			"\n\n" +
			"With --check, additionally fail if the index already has a non-yanked " +
			"release of the project's current version; useful as a pre-release gate.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var pkgname string
			var metadata *setuptools.Metadata
			if len(args) == 1 {
				pkgname = args[0]
			}
			if pkgname == "" || flags.Check {
				var err error
				metadata, err = setuptools.Discover(flags.Dir)
				if err != nil {
					return err
				}
				if pkgname == "" {
					pkgname = metadata.Name
				}
			}

			client := pep503.Client{
				BaseURL:  flags.IndexServer,
				HTMLHook: pep629.HTMLVersionCheck,
			}
			client.Python = flags.Python.Version

			links, err := client.ListPackageFiles(ctx, pkgname)
			if err != nil {
				return err
			}

			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(table, "FILENAME\tREQUIRES-PYTHON\tYANKED")
			for _, link := range links {
				yanked := ""
				if pep592.IsYanked(link) {
					yanked = "yes"
					if reason := pep592.YankedReason(link); reason != "" {
						yanked = reason
					}
				}
				fmt.Fprintf(table, "%s\t%s\t%s\n",
					link.Text,
					link.DataAttrs["data-requires-python"],
					yanked)
			}
			if err := table.Flush(); err != nil {
				return err
			}

			if flags.Check {
				spec, err := pep440.ParseSpecifier("==" + metadata.Version)
				if err != nil {
					return fmt.Errorf("project version: %w", err)
				}
				// Only non-yanked files count as published, so drop the
				// yanked ones up front rather than letting Select fall
				// back to them.
				var choices []pep440.Version
				for _, link := range links {
					if pep592.IsYanked(link) {
						continue
					}
					fileInfo, err := bdist.ParseFilename(link.Text)
					if err != nil {
						// Not a wheel (an sdist, most likely).
						continue
					}
					choices = append(choices, fileInfo.Version)
				}
				if published := spec.Select(choices, nil); published != nil {
					return fmt.Errorf("%s %s is already released on %s",
						pkgname, published, client.BaseURL)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.IndexServer, "index-server", pep503.PyPIBaseURL,
		"Index server to query")
	cmd.Flags().Var(&flags.Python, "python",
		"Exclude files that can't run on Python `VERSION`")
	cmd.Flags().BoolVar(&flags.Check, "check", false,
		"Fail if the project's current version already has a non-yanked release")
	cmd.Flags().StringVar(&flags.Dir, "dir", ".",
		"The project `DIR` to read the default PACKAGE (and --check version) from")
	argparserDist.AddCommand(cmd)
}
