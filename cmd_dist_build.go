package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/datawire/wheelwright/pkg/cliutil"
	"github.com/datawire/wheelwright/pkg/pipbuild"
)

// buildConfig is the `--config-file` schema; each field supplies the default
// for the flag of the same name.
type buildConfig struct {
	PythonHome string `json:"python-home,omitempty"`
	Pip        string `json:"pip,omitempty"`
	DistDir    string `json:"dist-dir,omitempty"`
}

func init() {
	var flags struct {
		PythonHome string
		Pip        string
		DistDir    string
		ConfigFile string
	}
	cmd := &cobra.Command{
		Use:   "build [flags] [PROJECT_DIR]",
		Short: "Build the project's wheel in to a fresh dist/ directory",
		Long: "Clear the project's dist/ directory, run `pip wheel --no-deps` to repopulate " +
			"it, and then clear the transient build/ and *.egg-info directories that the " +
			"build leaves behind.  Dependency bundling is always disabled: the wheel " +
			"contains the project's own code, never its dependencies." +
			"\n\n" +
			"If pip fails, the leftover directories are kept for post-mortem, and " +
			"wheelwright exits with pip's own exit status.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ConfigFile != "" {
				content, err := os.ReadFile(flags.ConfigFile)
				if err != nil {
					return err
				}
				var config buildConfig
				if err := yaml.UnmarshalStrict(content, &config); err != nil {
					return fmt.Errorf("parse %q: %w", flags.ConfigFile, err)
				}
				// Explicitly given flags win over config-file values.
				if !cmd.Flags().Changed("python-home") && config.PythonHome != "" {
					flags.PythonHome = config.PythonHome
				}
				if !cmd.Flags().Changed("pip") && config.Pip != "" {
					flags.Pip = config.Pip
				}
				if !cmd.Flags().Changed("dist-dir") && config.DistDir != "" {
					flags.DistDir = config.DistDir
				}
			}

			opts := pipbuild.Options{
				PythonHome: flags.PythonHome,
				Pip:        strings.Fields(flags.Pip),
				DistDir:    flags.DistDir,
			}
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			return pipbuild.Build(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&flags.PythonHome, "python-home", "",
		"Export `PATH` as PYTHONHOME to the packaging tool (default: leave the environment alone)")
	cmd.Flags().StringVar(&flags.Pip, "pip", "pip",
		"Run `CMDLINE` (split on whitespace) as the packaging tool")
	cmd.Flags().StringVar(&flags.DistDir, "dist-dir", "dist",
		"Write wheels to `DIR`, relative to the project directory")
	cmd.Flags().StringVar(&flags.ConfigFile, "config-file", "",
		"Read flag defaults from the YAML `FILE`")
	argparserDist.AddCommand(cmd)
}
