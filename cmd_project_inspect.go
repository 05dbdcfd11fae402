package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/python/pep425"
	"github.com/datawire/wheelwright/pkg/python/pep440"
	"github.com/datawire/wheelwright/pkg/python/pep503"
	"github.com/datawire/wheelwright/pkg/python/pypa/bdist"
	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

func init() {
	cmd := &cobra.Command{
		Use:   "inspect [flags] [PROJECT_DIR] >PROJECT.yml",
		Short: "Dump the project's metadata",
		Long: "Read the project's setuptools metadata (from PKG-INFO, a previous build's " +
			"egg-info, setup.cfg, or a static read of setup.py; first hit wins), and " +
			"dump it along with the names derived from it: the normalized package " +
			"name, the normalized version, the egg-info directory that a build leaves " +
			"behind, and the filename of a pure-Python 3 wheel of the project.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir := "."
			if len(args) == 1 {
				projectDir = args[0]
			}
			metadata, err := setuptools.Discover(projectDir)
			if err != nil {
				return err
			}

			version, err := pep440.ParseVersion(metadata.Version)
			if err != nil {
				return err
			}
			normVersion, err := version.Normalize()
			if err != nil {
				return err
			}
			wheelFilename, err := bdist.GenerateFilename(bdist.FileNameData{
				Distribution: metadata.Name,
				Version:      *version,
				CompatibilityTag: pep425.Tag{
					Python:   "py3",
					ABI:      "none",
					Platform: "any",
				},
			})
			if err != nil {
				return err
			}

			var out struct {
				Name struct {
					Raw        string
					Normalized string
				}
				Version struct {
					Raw        string
					Normalized string
				}
				Summary        string `yaml:",omitempty"`
				License        string `yaml:",omitempty"`
				HomePage       string `yaml:"homepage,omitempty"`
				Author         string `yaml:",omitempty"`
				RequiresPython string `yaml:"requiresPython,omitempty"`
				Source         string
				EggInfoDir     string `yaml:"eggInfoDir"`
				WheelFilename  string `yaml:"wheelFilename"`
			}
			out.Name.Raw = metadata.Name
			out.Name.Normalized = pep503.NormalizeName(metadata.Name)
			out.Version.Raw = metadata.Version
			out.Version.Normalized = normVersion.String()
			out.Summary = metadata.Summary
			out.License = metadata.License
			out.HomePage = metadata.HomePage
			out.Author = metadata.Author
			out.RequiresPython = metadata.RequiresPython
			out.Source = metadata.Source
			out.EggInfoDir = setuptools.EggInfoDir(metadata.Name)
			out.WheelFilename = wheelFilename

			bs, err := yaml.Marshal(out)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(bs); err != nil {
				return err
			}
			return nil
		},
	}
	argparserProject.AddCommand(cmd)
}
