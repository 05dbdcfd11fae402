// Package pipbuild deals with producing a project's wheel by running pip, and
// with the directory cleanup around that run.
package pipbuild

import (
	"context"
	"os"
	"path/filepath"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"

	"github.com/datawire/wheelwright/pkg/python/setuptools"
)

// Options configure a wheel build.  The zero value runs `pip wheel` on the
// current directory.
type Options struct {
	// PythonHome, when non-empty, is exported to the child process as
	// PYTHONHOME.  The parent process environment is never modified.
	PythonHome string

	// Pip is the argv prefix of the packaging tool; nil means ["pip"].
	Pip []string

	// Dir is the project source directory, defaulting to ".".  DistDir and
	// the cleaned-up build/ and *.egg-info directories are resolved
	// relative to it.
	Dir string

	// DistDir is the wheel output directory, defaulting to "dist".
	DistDir string
}

func (opts *Options) fillDefaults() {
	if len(opts.Pip) == 0 {
		opts.Pip = []string{"pip"}
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.DistDir == "" {
		opts.DistDir = "dist"
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// removeIfExists removes the directory tree rooted at path; a path that
// doesn't exist is not an error.
func removeIfExists(ctx context.Context, path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	dlog.Debugf(ctx, "removing %q", path)
	return os.RemoveAll(path)
}

// eggInfoDirs returns the egg-info directory paths to clean for the project in
// dir.  The directory name comes from the project metadata by setuptools' own
// name mangling; when no metadata can be discovered, fall back to anything
// matching *.egg-info, so that cleanup still happens on projects we cannot
// parse.
func eggInfoDirs(dir string) []string {
	if metadata, err := setuptools.Discover(dir); err == nil && metadata.Name != "" {
		return []string{filepath.Join(dir, setuptools.EggInfoDir(metadata.Name))}
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.egg-info"))
	return matches
}

// Build produces the project's wheel in to a fresh DistDir.
//
// The sequence is fixed: DistDir is removed (if present) before pip runs, so
// that pip alone repopulates it; `pip wheel --no-deps -w DistDir .` runs in
// Dir with its output streamed through; and only after pip succeeds are the
// transient build/ and egg-info directories removed.  If pip fails, the
// post-build cleanup does not run, and the returned error carries pip's exit
// code (as a *dexec.ExitError).
//
// Dependency bundling stays disabled unconditionally: the wheel contains the
// project's own code only, never its dependencies.
func Build(ctx context.Context, opts Options) error {
	opts.fillDefaults()

	if err := removeIfExists(ctx, resolve(opts.Dir, opts.DistDir)); err != nil {
		return err
	}

	args := make([]string, 0, len(opts.Pip)+5)
	args = append(args, opts.Pip...)
	args = append(args,
		"wheel",
		"--no-deps",
		"-w", opts.DistDir,
		".")
	cmd := dexec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if opts.PythonHome != "" {
		cmd.Env = append(os.Environ(),
			"PYTHONHOME="+opts.PythonHome)
	}
	if err := cmd.Run(); err != nil {
		return err
	}

	return Clean(ctx, opts, false)
}

// Clean removes the transient build byproducts: the build/ directory and the
// project's egg-info directory.  With all set, the DistDir output directory is
// removed too.  Paths that don't exist are skipped.
func Clean(ctx context.Context, opts Options, all bool) error {
	opts.fillDefaults()

	if all {
		if err := removeIfExists(ctx, resolve(opts.Dir, opts.DistDir)); err != nil {
			return err
		}
	}
	if err := removeIfExists(ctx, filepath.Join(opts.Dir, "build")); err != nil {
		return err
	}
	for _, eggInfo := range eggInfoDirs(opts.Dir) {
		if err := removeIfExists(ctx, eggInfo); err != nil {
			return err
		}
	}
	return nil
}
