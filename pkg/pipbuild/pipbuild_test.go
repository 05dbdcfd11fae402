package pipbuild_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/wheelwright/pkg/pipbuild"
)

const wheelName = "mojadata-4.3.5-py3-none-any.whl"

// fakePip writes an executable stand-in for pip and returns the argv prefix to
// run it with.  The script sees the real pipbuild arguments: $1=wheel
// $2=--no-deps $3=-w $4=DISTDIR $5=., with the project directory as its
// working directory.
func fakePip(t *testing.T, body string) []string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "pip.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return []string{"/bin/sh", script}
}

// buildingPip behaves like a successful `pip wheel` run: it leaves a wheel in
// the output directory and a build/ directory behind, like setuptools does.
func buildingPip(t *testing.T) []string {
	t.Helper()
	return fakePip(t, `
test "$1" = wheel || exit 3
test "$2" = --no-deps || exit 3
test "$3" = -w || exit 3
mkdir -p "$4" build mojadata.egg-info
: > "$4"/`+wheelName+`
: > build/lib.marker
: > mojadata.egg-info/PKG-INFO
`)
}

func mkProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte(`from setuptools import setup

setup(
    name="mojadata",
    version="4.3.5",
    python_requires=">=3.10",
)
`), 0o644))
	return dir
}

func lsDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func assertBuiltState(t *testing.T, project string) {
	t.Helper()
	assert.Equal(t, []string{wheelName}, lsDir(t, filepath.Join(project, "dist")))
	assert.NoDirExists(t, filepath.Join(project, "build"))
	assert.NoDirExists(t, filepath.Join(project, "mojadata.egg-info"))
}

func TestBuildFromScratch(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	project := mkProject(t)

	// None of dist/, build/, or the egg-info dir exist yet; their absence
	// must not cause a failure.
	require.NoError(t, pipbuild.Build(ctx, pipbuild.Options{
		Pip: buildingPip(t),
		Dir: project,
	}))
	assertBuiltState(t, project)
}

func TestBuildClearsStaleState(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	project := mkProject(t)

	require.NoError(t, os.MkdirAll(filepath.Join(project, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "dist", "old.whl"), []byte("stale"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "build", "lib"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "mojadata.egg-info"), 0o755))

	require.NoError(t, pipbuild.Build(ctx, pipbuild.Options{
		Pip: buildingPip(t),
		Dir: project,
	}))
	assertBuiltState(t, project)
}

func TestBuildIdempotent(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	project := mkProject(t)
	opts := pipbuild.Options{
		Pip: buildingPip(t),
		Dir: project,
	}

	require.NoError(t, pipbuild.Build(ctx, opts))
	assertBuiltState(t, project)

	require.NoError(t, pipbuild.Build(ctx, opts))
	assertBuiltState(t, project)
}

func TestBuildFailureSkipsPostCleanup(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	project := mkProject(t)

	require.NoError(t, os.MkdirAll(filepath.Join(project, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "dist", "old.whl"), []byte("stale"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "build"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "mojadata.egg-info"), 0o755))

	err := pipbuild.Build(ctx, pipbuild.Options{
		Pip: fakePip(t, `exit 42`),
		Dir: project,
	})
	require.Error(t, err)
	var exitErr *dexec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 42, exitErr.ExitCode())

	// The pre-build cleanup already happened and stays in effect; the
	// post-build cleanup must not have run.
	assert.NoDirExists(t, filepath.Join(project, "dist"))
	assert.DirExists(t, filepath.Join(project, "build"))
	assert.DirExists(t, filepath.Join(project, "mojadata.egg-info"))
}

func TestBuildPythonHome(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	project := mkProject(t)

	require.NoError(t, pipbuild.Build(ctx, pipbuild.Options{
		PythonHome: "/opt/python310",
		Pip: fakePip(t, `
mkdir -p "$4"
: > "$4"/`+wheelName+`
printf '%s' "$PYTHONHOME" > pythonhome.txt
`),
		Dir: project,
	}))

	content, err := os.ReadFile(filepath.Join(project, "pythonhome.txt"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/python310", string(content))
	// Scoped to the child only.
	assert.Empty(t, os.Getenv("PYTHONHOME"))
}

func TestClean(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)
	project := mkProject(t)
	opts := pipbuild.Options{Dir: project}

	require.NoError(t, os.MkdirAll(filepath.Join(project, "dist"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "build"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(project, "mojadata.egg-info"), 0o755))

	require.NoError(t, pipbuild.Clean(ctx, opts, false))
	assert.DirExists(t, filepath.Join(project, "dist"))
	assert.NoDirExists(t, filepath.Join(project, "build"))
	assert.NoDirExists(t, filepath.Join(project, "mojadata.egg-info"))

	require.NoError(t, pipbuild.Clean(ctx, opts, true))
	assert.NoDirExists(t, filepath.Join(project, "dist"))

	// Nothing left; cleaning again is still fine.
	require.NoError(t, pipbuild.Clean(ctx, opts, true))
}

func TestCleanEggInfoFallback(t *testing.T) {
	ctx := dlog.NewTestContext(t, false)

	// A directory with no discoverable metadata still gets its *.egg-info
	// globs cleaned.
	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, "stray.egg-info"), 0o755))

	require.NoError(t, pipbuild.Clean(ctx, pipbuild.Options{Dir: project}, false))
	assert.NoDirExists(t, filepath.Join(project, "stray.egg-info"))
}
